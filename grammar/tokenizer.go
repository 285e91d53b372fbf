package grammar

import (
	"errors"
	"fmt"
	"io"
)

type Tokenizer struct {
	r io.RuneScanner
}

func NewTokenizer(r io.RuneScanner) *Tokenizer {
	return &Tokenizer{r: r}
}

func (l *Tokenizer) Token() (any, error) {
	char, _, err := l.r.ReadRune()
	if err != nil {
		return nil, err
	}

	// whitespace separates tokens but carries no meaning in math mode
	if isWhitespace(char) {
		if err := l.whitespaces(); err != nil {
			return nil, err
		}

		return l.Token()
	}

	switch char {
	case '{':
		return ParameterStart{}, nil
	case '}':
		return ParameterEnd{}, nil
	case '[':
		return OptionalStart{}, nil
	case ']':
		return OptionalEnd{}, nil
	case '%':
		return l.skipComment()
	case '\\':
		return l.readBackslash()
	default:
		if isDigit(char) {
			if err := l.r.UnreadRune(); err != nil {
				return nil, err
			}

			return l.readNumber()
		}

		return Symbol([]rune{char}), nil
	}
}

// Verbatim reads characters as they are until stop reports the rune that
// ends the run. The stopping rune is consumed.
func (l *Tokenizer) Verbatim(stop func(rune, error) bool) (string, error) {
	var runes []rune
	for {
		read, _, err := l.r.ReadRune()
		if stop(read, err) {
			return string(runes), nil
		}

		if err != nil {
			return "", err
		}

		runes = append(runes, read)
	}
}

// readNumber reads a run of digits, decimal point included
func (l *Tokenizer) readNumber() (any, error) {
	var runes []rune
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return Number(runes), nil
		}

		if err != nil {
			return nil, err
		}

		if !isDigit(read) && read != '.' {
			return Number(runes), l.r.UnreadRune()
		}

		runes = append(runes, read)
	}
}

func (l *Tokenizer) readBackslash() (any, error) {
	r, _, err := l.r.ReadRune()
	if err == io.EOF {
		return nil, errors.New("formula ends right after \\")
	}

	if err != nil {
		return nil, err
	}

	// a letter means it's a named command \xyz
	if isLetter(r) {
		if err := l.r.UnreadRune(); err != nil {
			return nil, err
		}

		return l.readCommand()
	}

	// \\ starts a new row, any other escaped character is a one symbol
	// command, for example \{ or \,
	return Command([]rune{'\\', r}), nil
}

func (l *Tokenizer) readCommand() (any, error) {
	runes := []rune{'\\'}
	for {
		read, _, err := l.r.ReadRune()
		if err != io.EOF {
			if err != nil {
				return nil, err
			}

			// letter: continue reading name
			if isLetter(read) {
				runes = append(runes, read)
				continue
			}

			// command names may include * in the end (except for begin and end)
			if read == '*' && string(runes) != "\\begin" && string(runes) != "\\end" {
				runes = append(runes, read)
			} else {
				if err := l.r.UnreadRune(); err != nil {
					return nil, err
				}
			}
		}

		switch command := string(runes); command {
		case "\\begin":
			return l.readEnvironmentStart()
		case "\\end":
			return l.readEnvironmentEnd()
		default:
			return Command(command), nil
		}
	}
}

func (l *Tokenizer) readEnvironmentStart() (any, error) {
	name, err := l.environmentName()
	if err != nil {
		return nil, err
	}

	return EnvironmentStart{Name: name}, nil
}

func (l *Tokenizer) readEnvironmentEnd() (any, error) {
	name, err := l.environmentName()
	if err != nil {
		return nil, err
	}

	return EnvironmentEnd{Name: name}, nil
}

// environmentName reads the {name} group after \begin or \end, allowing
// a trailing star as in align*
func (l *Tokenizer) environmentName() (string, error) {
	if err := l.forwardTo('{'); err != nil {
		return "", err
	}

	word, err := l.word()
	if err != nil {
		return "", err
	}

	if word == "" {
		return "", errors.New("environment name is expected")
	}

	star, err := l.star()
	if err != nil {
		return "", err
	}

	if star {
		word += "*"
	}

	if err := l.expect('}'); err != nil {
		return "", err
	}

	return word, nil
}

// skipComment drops the rest of the line, comments have no place in a
// formula
func (l *Tokenizer) skipComment() (any, error) {
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF || read == '\n' {
			return l.Token()
		}

		if err != nil {
			return nil, err
		}
	}
}

// whitespaces skips until next non-whitespace symbol
func (l *Tokenizer) whitespaces() error {
	for {
		r, _, err := l.r.ReadRune()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}

		if !isWhitespace(r) {
			return l.r.UnreadRune()
		}
	}
}

// forwardTo skips whitespaces and makes sure next symbol is "e"
func (l *Tokenizer) forwardTo(e rune) error {
	if err := l.whitespaces(); err != nil {
		return err
	}

	return l.expect(e)
}

// expect verifies that the following symbol is "e", an end of input
// passes as well
func (l *Tokenizer) expect(e rune) error {
	r, _, err := l.r.ReadRune()
	if err == io.EOF {
		return nil
	}

	if err != nil {
		return err
	}

	if r != e {
		return fmt.Errorf("expected symbol %c, got %c instead", e, r)
	}

	return nil
}

// star reads following star symbol, if present
func (l *Tokenizer) star() (bool, error) {
	r, _, err := l.r.ReadRune()
	if err == io.EOF {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	if r == '*' {
		return true, nil
	}

	return false, l.r.UnreadRune()
}

// word reads a sequence of letters
func (l *Tokenizer) word() (string, error) {
	var runes []rune
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return string(runes), nil
		}

		if err != nil {
			return "", err
		}

		if !isLetter(read) {
			return string(runes), l.r.UnreadRune()
		}

		runes = append(runes, read)
	}
}

// isLetter returns true for a letter
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\n', '\t', '\r':
		return true
	default:
		return false
	}
}
