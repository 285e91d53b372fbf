package grammar

// identifiers maps commands to the identifier glyph they stand for
var identifiers = map[string]string{
	"\\alpha":      "α",
	"\\beta":       "β",
	"\\gamma":      "γ",
	"\\delta":      "δ",
	"\\epsilon":    "ϵ",
	"\\varepsilon": "ε",
	"\\zeta":       "ζ",
	"\\eta":        "η",
	"\\theta":      "θ",
	"\\vartheta":   "ϑ",
	"\\iota":       "ι",
	"\\kappa":      "κ",
	"\\lambda":     "λ",
	"\\mu":         "μ",
	"\\nu":         "ν",
	"\\xi":         "ξ",
	"\\omicron":    "ο",
	"\\pi":         "π",
	"\\varpi":      "ϖ",
	"\\rho":        "ρ",
	"\\varrho":     "ϱ",
	"\\sigma":      "σ",
	"\\varsigma":   "ς",
	"\\tau":        "τ",
	"\\upsilon":    "υ",
	"\\phi":        "ϕ",
	"\\varphi":     "φ",
	"\\chi":        "χ",
	"\\psi":        "ψ",
	"\\omega":      "ω",
	"\\Gamma":      "Γ",
	"\\Delta":      "Δ",
	"\\Theta":      "Θ",
	"\\Lambda":     "Λ",
	"\\Xi":         "Ξ",
	"\\Pi":         "Π",
	"\\Sigma":      "Σ",
	"\\Upsilon":    "Υ",
	"\\Phi":        "Φ",
	"\\Psi":        "Ψ",
	"\\Omega":      "Ω",
	"\\ell":        "ℓ",
	"\\hbar":       "ℏ",
	"\\imath":      "ı",
	"\\jmath":      "ȷ",
	"\\infty":      "∞",
	"\\partial":    "∂",
	"\\nabla":      "∇",
	"\\aleph":      "ℵ",
	"\\beth":       "ℶ",
	"\\gimel":      "ℷ",
	"\\emptyset":   "∅",
	"\\varnothing": "∅",
	"\\Re":         "ℜ",
	"\\Im":         "ℑ",
	"\\wp":         "℘",
}

// operators maps commands to the operator glyph they stand for
var operators = map[string]string{
	"\\pm":              "±",
	"\\mp":              "∓",
	"\\times":           "×",
	"\\div":             "÷",
	"\\cdot":            "⋅",
	"\\ast":             "∗",
	"\\star":            "⋆",
	"\\circ":            "∘",
	"\\bullet":          "•",
	"\\cap":             "∩",
	"\\cup":             "∪",
	"\\uplus":           "⊎",
	"\\sqcap":           "⊓",
	"\\sqcup":           "⊔",
	"\\vee":             "∨",
	"\\lor":             "∨",
	"\\wedge":           "∧",
	"\\land":            "∧",
	"\\setminus":        "∖",
	"\\oplus":           "⊕",
	"\\ominus":          "⊖",
	"\\otimes":          "⊗",
	"\\oslash":          "⊘",
	"\\odot":            "⊙",
	"\\leq":             "≤",
	"\\le":              "≤",
	"\\geq":             "≥",
	"\\ge":              "≥",
	"\\neq":             "≠",
	"\\ne":              "≠",
	"\\equiv":           "≡",
	"\\sim":             "∼",
	"\\simeq":           "≃",
	"\\approx":          "≈",
	"\\cong":            "≅",
	"\\propto":          "∝",
	"\\prec":            "≺",
	"\\succ":            "≻",
	"\\preceq":          "⪯",
	"\\succeq":          "⪰",
	"\\ll":              "≪",
	"\\gg":              "≫",
	"\\subset":          "⊂",
	"\\supset":          "⊃",
	"\\subseteq":        "⊆",
	"\\supseteq":        "⊇",
	"\\sqsubseteq":      "⊑",
	"\\sqsupseteq":      "⊒",
	"\\in":              "∈",
	"\\ni":              "∋",
	"\\notin":           "∉",
	"\\mid":             "∣",
	"\\nmid":            "∤",
	"\\parallel":        "∥",
	"\\perp":            "⊥",
	"\\bot":             "⊥",
	"\\top":             "⊤",
	"\\vdash":           "⊢",
	"\\dashv":           "⊣",
	"\\models":          "⊨",
	"\\forall":          "∀",
	"\\exists":          "∃",
	"\\nexists":         "∄",
	"\\neg":             "¬",
	"\\lnot":            "¬",
	"\\to":              "→",
	"\\rightarrow":      "→",
	"\\leftarrow":       "←",
	"\\gets":            "←",
	"\\leftrightarrow":  "↔",
	"\\Rightarrow":      "⇒",
	"\\Leftarrow":       "⇐",
	"\\Leftrightarrow":  "⇔",
	"\\implies":         "⟹",
	"\\iff":             "⟺",
	"\\mapsto":          "↦",
	"\\longrightarrow":  "⟶",
	"\\longleftarrow":   "⟵",
	"\\longmapsto":      "⟼",
	"\\uparrow":         "↑",
	"\\downarrow":       "↓",
	"\\updownarrow":     "↕",
	"\\Uparrow":         "⇑",
	"\\Downarrow":       "⇓",
	"\\hookrightarrow":  "↪",
	"\\hookleftarrow":   "↩",
	"\\rightharpoonup":  "⇀",
	"\\leftharpoonup":   "↼",
	"\\nearrow":         "↗",
	"\\searrow":         "↘",
	"\\swarrow":         "↙",
	"\\nwarrow":         "↖",
	"\\angle":           "∠",
	"\\measuredangle":   "∡",
	"\\triangle":        "△",
	"\\triangleleft":    "◁",
	"\\triangleright":   "▷",
	"\\square":          "□",
	"\\Box":             "□",
	"\\diamond":         "⋄",
	"\\Diamond":         "◇",
	"\\dagger":          "†",
	"\\ddagger":         "‡",
	"\\dots":            "…",
	"\\ldots":           "…",
	"\\cdots":           "⋯",
	"\\vdots":           "⋮",
	"\\ddots":           "⋱",
	"\\dotsb":           "⋯",
	"\\dotsc":           "…",
	"\\therefore":       "∴",
	"\\because":         "∵",
	"\\prime":           "′",
	"\\backslash":       "\\",
	"\\langle":          "⟨",
	"\\rangle":          "⟩",
	"\\lceil":           "⌈",
	"\\rceil":           "⌉",
	"\\lfloor":          "⌊",
	"\\rfloor":          "⌋",
	"\\vert":            "|",
	"\\lvert":           "|",
	"\\rvert":           "|",
	"\\Vert":            "‖",
	"\\lVert":           "‖",
	"\\rVert":           "‖",
	"\\colon":           ":",
	"\\amalg":           "⨿",
	"\\wr":              "≀",
	"\\asymp":           "≍",
	"\\bowtie":          "⋈",
	"\\doteq":           "≐",
	"\\rightleftharpoons": "⇌",
	"\\{":               "{",
	"\\}":               "}",
	"\\|":               "‖",
	"\\%":               "%",
	"\\&":               "&",
	"\\#":               "#",
	"\\$":               "$",
	"\\_":               "_",
}

// largeOperators maps commands to n-ary operator glyphs
var largeOperators = map[string]string{
	"\\sum":       "∑",
	"\\prod":      "∏",
	"\\coprod":    "∐",
	"\\int":       "∫",
	"\\iint":      "∬",
	"\\iiint":     "∭",
	"\\oint":      "∮",
	"\\bigcup":    "⋃",
	"\\bigcap":    "⋂",
	"\\bigvee":    "⋁",
	"\\bigwedge":  "⋀",
	"\\bigoplus":  "⨁",
	"\\bigotimes": "⨂",
	"\\bigodot":   "⨀",
	"\\biguplus":  "⨄",
	"\\bigsqcup":  "⨆",
}

// movableGlyphs lists the large operators whose scripts belong under and
// over the sign. Integrals keep their scripts beside the sign.
var movableGlyphs = map[string]bool{
	"∑": true,
	"∏": true,
	"∐": true,
	"⋃": true,
	"⋂": true,
	"⋁": true,
	"⋀": true,
	"⨁": true,
	"⨂": true,
	"⨀": true,
	"⨄": true,
	"⨆": true,
}

// functions maps command names to the upright name they display as
var functions = map[string]string{
	"\\arccos": "arccos",
	"\\arcsin": "arcsin",
	"\\arctan": "arctan",
	"\\arg":    "arg",
	"\\cos":    "cos",
	"\\cosh":   "cosh",
	"\\cot":    "cot",
	"\\coth":   "coth",
	"\\csc":    "csc",
	"\\deg":    "deg",
	"\\det":    "det",
	"\\dim":    "dim",
	"\\exp":    "exp",
	"\\gcd":    "gcd",
	"\\hom":    "hom",
	"\\inf":    "inf",
	"\\ker":    "ker",
	"\\lg":     "lg",
	"\\lim":    "lim",
	"\\liminf": "lim inf",
	"\\limsup": "lim sup",
	"\\ln":     "ln",
	"\\log":    "log",
	"\\max":    "max",
	"\\min":    "min",
	"\\Pr":     "Pr",
	"\\sec":    "sec",
	"\\sin":    "sin",
	"\\sinh":   "sinh",
	"\\sup":    "sup",
	"\\tan":    "tan",
	"\\tanh":   "tanh",
}

// movableNames lists the function names whose scripts belong underneath,
// as in the limit of a sequence
var movableNames = map[string]bool{
	"det":     true,
	"gcd":     true,
	"inf":     true,
	"lim":     true,
	"lim inf": true,
	"lim sup": true,
	"max":     true,
	"min":     true,
	"Pr":      true,
	"sup":     true,
}

// accents maps commands to the mark drawn over their argument
var accents = map[string]string{
	"\\hat":            "^",
	"\\widehat":        "^",
	"\\tilde":          "~",
	"\\widetilde":      "~",
	"\\bar":            "¯",
	"\\overline":       "¯",
	"\\dot":            "˙",
	"\\ddot":           "¨",
	"\\breve":          "˘",
	"\\check":          "ˇ",
	"\\vec":            "⃗",
	"\\overrightarrow": "⃗",
	"\\overleftarrow":  "⃖",
	"\\acute":          "´",
	"\\grave":          "`",
	"\\mathring":       "˚",
	"\\overbrace":      "⏞",
}

// underAccents maps commands to the mark drawn under their argument
var underAccents = map[string]string{
	"\\underline":  "_",
	"\\underbrace": "⏟",
}

// spacing lists commands that turn into an explicit space
var spacing = map[string]bool{
	"\\,":          true,
	"\\:":          true,
	"\\;":          true,
	"\\!":          true,
	"\\ ":          true,
	"\\quad":       true,
	"\\qquad":      true,
	"\\enspace":    true,
	"\\thinspace":  true,
	"\\medspace":   true,
	"\\thickspace": true,
}

// alphabet describes one Unicode mathematical alphabet as offsets from
// the plain letters, with exceptions for the letterlike symbols Unicode
// assigned long before the alphabets got their own block.
type alphabet struct {
	upper, lower, digit rune
	exceptions          map[rune]rune
}

// alphabets maps styling commands to the alphabet they draw from. The
// zero alphabet, as used by \mathrm, keeps characters as they are.
var alphabets = map[string]alphabet{
	"\\mathrm":     {},
	"\\mathbf":     {upper: 0x1d400, lower: 0x1d41a, digit: 0x1d7ce},
	"\\boldsymbol": {upper: 0x1d400, lower: 0x1d41a, digit: 0x1d7ce},
	"\\mathit":     {upper: 0x1d434, lower: 0x1d44e, exceptions: map[rune]rune{'h': 'ℎ'}},
	"\\mathbb": {upper: 0x1d538, lower: 0x1d552, digit: 0x1d7d8, exceptions: map[rune]rune{
		'C': 'ℂ', 'H': 'ℍ', 'N': 'ℕ', 'P': 'ℙ', 'Q': 'ℚ', 'R': 'ℝ', 'Z': 'ℤ',
	}},
	"\\mathfrak": {upper: 0x1d504, lower: 0x1d51e, exceptions: map[rune]rune{
		'C': 'ℭ', 'H': 'ℌ', 'I': 'ℑ', 'R': 'ℜ', 'Z': 'ℨ',
	}},
	"\\mathsf": {upper: 0x1d5a0, lower: 0x1d5ba, digit: 0x1d7e2},
	"\\mathtt": {upper: 0x1d670, lower: 0x1d68a, digit: 0x1d7f6},
	"\\mathscr": {upper: 0x1d49c, lower: 0x1d4b6, exceptions: map[rune]rune{
		'B': 'ℬ', 'E': 'ℰ', 'F': 'ℱ', 'H': 'ℋ', 'I': 'ℐ', 'L': 'ℒ', 'M': 'ℳ', 'R': 'ℛ',
		'e': 'ℯ', 'g': 'ℊ', 'o': 'ℴ',
	}},
}

// letter styles a single character, characters outside the alphabet pass
// through unchanged
func (a alphabet) letter(r rune) rune {
	if s, ok := a.exceptions[r]; ok {
		return s
	}

	switch {
	case 'A' <= r && r <= 'Z' && a.upper != 0:
		return a.upper + r - 'A'
	case 'a' <= r && r <= 'z' && a.lower != 0:
		return a.lower + r - 'a'
	case '0' <= r && r <= '9' && a.digit != 0:
		return a.digit + r - '0'
	}

	return r
}

// styled rewrites text into the given alphabet
func (a alphabet) styled(text string) string {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		out = append(out, a.letter(r))
	}

	return string(out)
}
