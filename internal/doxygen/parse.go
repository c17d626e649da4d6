package doxygen

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads the Doxyfile dialect produced by `doxygen -g` and `doxygen -x`.
//
// Lines starting with # are comments. A trailing backslash continues a
// statement on the next line. `KEY = a b` assigns and `KEY += c` appends.
// A single token yields a scalar; several tokens, an append or a continued
// statement yield a list.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		stmt      strings.Builder
		lineNo    int
		startLine int
		continued bool
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), " \t\r")
		if stmt.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			startLine = lineNo
			continued = false
		}
		if strings.HasSuffix(line, `\`) {
			stmt.WriteString(strings.TrimSuffix(line, `\`))
			stmt.WriteByte(' ')
			continued = true
			continue
		}
		stmt.WriteString(line)
		if err := parseStatement(cfg, stmt.String(), continued); err != nil {
			return nil, fmt.Errorf("line %d: %w", startLine, err)
		}
		stmt.Reset()
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if stmt.Len() > 0 {
		if err := parseStatement(cfg, stmt.String(), continued); err != nil {
			return nil, fmt.Errorf("line %d: %w", startLine, err)
		}
	}
	return cfg, nil
}

func parseStatement(cfg *Config, stmt string, continued bool) error {
	eq := strings.IndexByte(stmt, '=')
	if eq < 0 {
		return fmt.Errorf("expected KEY = VALUE, got %q", strings.TrimSpace(stmt))
	}
	appendOp := eq > 0 && stmt[eq-1] == '+'
	keyEnd := eq
	if appendOp {
		keyEnd--
	}
	key := strings.TrimSpace(stmt[:keyEnd])
	if key == "" || strings.ContainsAny(key, " \t") {
		return fmt.Errorf("invalid option name %q", key)
	}

	tokens, err := tokenize(stmt[eq+1:])
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	switch {
	case appendOp:
		cfg.Append(key, tokens...)
	case continued || len(tokens) > 1:
		cfg.Set(key, List(tokens...))
	case len(tokens) == 1:
		cfg.SetString(key, tokens[0])
	default:
		cfg.SetString(key, "")
	}
	return nil
}

// tokenize splits on blanks outside double quotes. Inside quotes \" is a
// literal quote; any other backslash is kept as is.
func tokenize(s string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		inToken bool
		quoted  bool
	)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quoted && ch == '\\' && i+1 < len(s) && s[i+1] == '"':
			cur.WriteByte('"')
			i++
		case ch == '"':
			quoted = !quoted
			inToken = true
		case !quoted && (ch == ' ' || ch == '\t'):
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteByte(ch)
			inToken = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quoted value")
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}
