package formulasnap

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// bareArgRe inserts the braces OCR tends to drop around a one-letter
// argument to a \math* styling command.
var bareArgRe = regexp.MustCompile(`\\(math(?:bb|bf|cal|frak|it|rm|sf|tt))\s+([A-Za-z])`)

// despaced undoes the letter spacing OCR introduces inside well known
// function and tag names.
var despaced = []struct{ spaced, joined string }{
	{"l o g", "log"},
	{"g e n", "gen"},
	{"s i n", "sin"},
	{"c o s", "cos"},
	{"t a n", "tan"},
	{"e x p", "exp"},
	{"l n", "ln"},
	{"E n c", "Enc"},
	{"D e c", "Dec"},
	{"C L S", "CLS"},
	{"S E P", "SEP"},
}

var (
	qquadRunRe = regexp.MustCompile(`(\\qquad\s*){3,}`)
	quadRunRe  = regexp.MustCompile(`(\\quad\s*){3,}`)

	// stray spacer sequences OCR leaves at the end of a formula
	trailingSpacerGapRe = regexp.MustCompile(`(\\[;,!]\s*)+\\_\s*$`)
	trailingSpacerRe    = regexp.MustCompile(`(\\[;,!]\s*)+$`)
)

// styleCommands tune rendering size without changing structure.
var styleCommands = []string{`\displaystyle`, `\textstyle`, `\scriptstyle`, `\scriptscriptstyle`}

// breakRe matches line and page break commands, with their optional
// priority argument.
var breakRe = regexp.MustCompile(`\\(?:(?:no)?(?:line|page)?break(?:\[[0-9]\])?|newline)\b`)

// sizingCommands are dropped in front of a delimiter, keeping the
// delimiter itself. Longer names sit first so the two-letter variants
// never shadow them.
var sizingCommands = []string{
	`\Biggl`, `\Biggm`, `\Biggr`, `\biggl`, `\biggm`, `\biggr`,
	`\Bigl`, `\Bigm`, `\Bigr`, `\bigl`, `\bigm`, `\bigr`,
	`\Bigg`, `\bigg`, `\Big`, `\big`,
	`\left`, `\right`,
}

// sizedDelimiters pairs each delimiter that may follow a sizing command
// with its replacement. The lone period, as in \left., disappears.
var sizedDelimiters = []struct{ sized, plain string }{
	{`\{`, `\{`},
	{`\}`, `\}`},
	{`\|`, `\|`},
	{"(", "("},
	{")", ")"},
	{"[", "["},
	{"]", "]"},
	{"{", "{"},
	{"}", "}"},
	{"|", "|"},
	{".", ""},
}

// fontSwitches maps the legacy switch commands, which style everything to
// the end of the enclosing group, onto their argument-taking equivalents.
// The group pattern turns {\bf x} into \mathbf{x} by reusing the closing
// brace of the group as the end of the argument.
var fontSwitches = []struct {
	old, new string
	group    *regexp.Regexp
}{
	{`\bf`, `\mathbf`, regexp.MustCompile(`\{\\bf\b\s*`)},
	{`\it`, `\mathit`, regexp.MustCompile(`\{\\it\b\s*`)},
	{`\rm`, `\mathrm`, regexp.MustCompile(`\{\\rm\b\s*`)},
	{`\cal`, `\mathcal`, regexp.MustCompile(`\{\\cal\b\s*`)},
	{`\tt`, `\mathtt`, regexp.MustCompile(`\{\\tt\b\s*`)},
	{`\sf`, `\mathsf`, regexp.MustCompile(`\{\\sf\b\s*`)},
}

// scriptLetters maps upper case letters onto the Unicode mathematical
// script alphabet, standing in for \mathcal which the grammar does not
// know.
var scriptLetters = map[rune]rune{
	'A': '𝒜', 'B': 'ℬ', 'C': '𝒞', 'D': '𝒟', 'E': 'ℰ',
	'F': 'ℱ', 'G': '𝒢', 'H': 'ℋ', 'I': 'ℐ', 'J': '𝒥',
	'K': '𝒦', 'L': 'ℒ', 'M': 'ℳ', 'N': '𝒩', 'O': '𝒪',
	'P': '𝒫', 'Q': '𝒬', 'R': 'ℛ', 'S': '𝒮', 'T': '𝒯',
	'U': '𝒰', 'V': '𝒱', 'W': '𝒲', 'X': '𝒳', 'Y': '𝒴',
	'Z': '𝒵',
}

// subscript/superscript order: {X_{a}}^{b} parses as one combined script
// atom, X_{a}^{b} does not. Three passes re-bracket increasingly general
// bases: a single letter with a braced subscript, a single letter with a
// one-character subscript, and a command with a braced argument.
var (
	subsupLetterRe  = regexp.MustCompile(`(^|[^a-zA-Z\\])([A-Za-z])(_\{[^}]*\})(\^\{[^}]*\})`)
	subsupShortRe   = regexp.MustCompile(`(^|[^a-zA-Z\\])([A-Za-z])_([A-Za-z0-9])(\^\{[^}]*\})`)
	subsupCommandRe = regexp.MustCompile(`(\\[a-zA-Z]+\{[^}]*\})(_\{[^}]*\})(\^\{[^}]*\})`)
)

// normalize cleans up OCR produced LaTeX before it reaches the grammar.
// It strips math mode wrappers, heals brace and spacing damage, rewrites
// legacy and unsupported commands into constructs the grammar accepts and
// re-brackets mixed subscript/superscript chains. The order of the rules
// matters: later rules assume earlier ones already removed confounders.
func normalize(latex string) string {
	s := norm.NFC.String(latex)
	s = strings.TrimSpace(s)

	s = strings.TrimPrefix(s, `\(`)
	s = strings.TrimSuffix(s, `\)`)
	s = strings.TrimPrefix(s, `\[`)
	s = strings.TrimSuffix(s, `\]`)
	s = strings.TrimLeft(s, "$")
	s = strings.TrimRight(s, "$")

	s = bareArgRe.ReplaceAllString(s, `\${1}{${2}}`)
	s = collapseBraces(s)

	for _, d := range despaced {
		s = strings.ReplaceAll(s, d.spaced, d.joined)
	}

	s = qquadRunRe.ReplaceAllString(s, `\quad `)
	s = quadRunRe.ReplaceAllString(s, `\quad `)
	s = trailingSpacerGapRe.ReplaceAllString(s, "")
	s = trailingSpacerRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, `\_`, "_")

	for _, cmd := range styleCommands {
		s = strings.ReplaceAll(s, cmd, "")
	}
	s = strings.ReplaceAll(s, `\limits`, "")
	s = strings.ReplaceAll(s, `\nolimits`, "")
	s = breakRe.ReplaceAllString(s, " ")

	for _, cmd := range sizingCommands {
		for _, d := range sizedDelimiters {
			s = strings.ReplaceAll(s, cmd+d.sized, d.plain)
		}
	}

	for _, fs := range fontSwitches {
		s = fs.group.ReplaceAllString(s, fs.new+"{")
		s = strings.ReplaceAll(s, fs.old+" ", fs.new+" ")
		s = strings.ReplaceAll(s, fs.old+"{", fs.new+"{")
	}

	s = strings.ReplaceAll(s, `\operatorname*`, `\operatorname`)
	s = rewriteCommand(s, `\operatorname`, func(arg string) string {
		return `\mathrm{` + arg + `}`
	}, `\mathrm`)
	s = rewriteCommand(s, `\mathcal`, scriptify, `\mathcal`)

	s = strings.ReplaceAll(s, `\qquad`, " ")
	s = strings.ReplaceAll(s, `\quad`, " ")

	s = rewriteCommand(s, `\rlap`, func(arg string) string { return arg }, `\rlap`)
	s = rewriteCommand(s, `\llap`, func(arg string) string { return arg }, `\llap`)

	s = matrixEnvironment(s)

	s = subsupLetterRe.ReplaceAllString(s, `${1}{${2}${3}}${4}`)
	s = subsupShortRe.ReplaceAllString(s, `${1}{${2}_${3}}${4}`)
	s = subsupCommandRe.ReplaceAllString(s, `{${1}${2}}${3}`)

	s = strings.ReplaceAll(s, "{}", "")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}

	return strings.TrimSpace(s)
}

// scriptify maps the upper case letters of a \mathcal argument to their
// script code points and passes everything else through.
func scriptify(arg string) string {
	var out strings.Builder
	for _, r := range arg {
		if script, ok := scriptLetters[r]; ok {
			out.WriteRune(script)
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}

// matchingBrace returns the index of the brace closing the group opened
// at open, or -1 when the group never closes.
func matchingBrace(s string, open int) int {
	if open >= len(s) || s[open] != '{' {
		return -1
	}
	depth := 1
	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// collapseBraces removes redundant brace wrapping: {{x}} and deeper
// stacks become {x}. Only a pair whose closings sit next to each other
// collapses, sibling groups like {{a}{b}} keep their outer braces.
func collapseBraces(s string) string {
	for {
		changed := false
		for i := 0; i+1 < len(s); i++ {
			if s[i] != '{' || s[i+1] != '{' {
				continue
			}
			outer := matchingBrace(s, i)
			inner := matchingBrace(s, i+1)
			if outer < 0 || inner < 0 || inner != outer-1 {
				continue
			}
			s = s[:i] + s[i+1:outer] + s[outer+1:]
			changed = true
			break
		}
		if !changed {
			return s
		}
	}
}

// rewriteCommand applies fn to the brace argument of every \name{...}
// occurrence, scanning the argument with a brace depth counter so nested
// groups survive. An unclosed argument runs to the end of the input. An
// occurrence without a brace group is replaced by bare, which may simply
// be name again to leave it alone.
func rewriteCommand(s, name string, fn func(string) string, bare string) string {
	var out strings.Builder
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], name)
		if j < 0 {
			out.WriteString(s[i:])
			break
		}
		j += i
		out.WriteString(s[i:j])
		k := j + len(name)
		if k < len(s) && isASCIILetter(s[k]) {
			// prefix of a longer command
			out.WriteString(name)
			i = k
			continue
		}
		arg := k
		for arg < len(s) && s[arg] == ' ' {
			arg++
		}
		if arg >= len(s) || s[arg] != '{' {
			out.WriteString(bare)
			i = k
			continue
		}
		end := matchingBrace(s, arg)
		if end < 0 {
			out.WriteString(fn(s[arg+1:]))
			return out.String()
		}
		out.WriteString(fn(s[arg+1 : end]))
		i = end + 1
	}
	return out.String()
}

// matrixEnvironment renames array and tabular environments to matrix and
// drops the column alignment block. The block only counts as an alignment
// spec when it sits directly after \begin{array}, a brace further along
// the row is ordinary content.
func matrixEnvironment(s string) string {
	for _, env := range []string{"array", "tabular"} {
		begin := `\begin{` + env + `}`
		for {
			at := strings.Index(s, begin)
			if at < 0 {
				break
			}
			rest := at + len(begin)
			spec := rest
			for spec < len(s) && (s[spec] == ' ' || s[spec] == '\t') {
				spec++
			}
			if spec < len(s) && s[spec] == '{' {
				end := matchingBrace(s, spec)
				if end < 0 {
					break
				}
				s = s[:at] + `\begin{matrix}` + s[end+1:]
				continue
			}
			s = s[:at] + `\begin{matrix}` + s[rest:]
		}
		s = strings.ReplaceAll(s, `\end{`+env+`}`, `\end{matrix}`)
	}
	return s
}

func isASCIILetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}
