package dotenv

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Marshal renders the parsed values as a sorted .env document that Load
// reads back unchanged. godotenv formats most values; those its escaping or
// integer shortcut would alter (a backslash, '!', '$', '`', or a number such
// as "007") are written single-quoted instead. A value holding a line break
// together with one of those characters cannot be represented exactly.
func (p *Parser) Marshal() (string, error) {
	plain := make(map[string]string, len(p.values))
	var lines []string
	for key, value := range p.values {
		if needsSingleQuotes(value) {
			lines = append(lines, key+"='"+value+"'")
			continue
		}
		plain[key] = value
	}

	out, err := godotenv.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("marshal env values: %w", err)
	}
	if out != "" {
		lines = append(lines, strings.Split(out, "\n")...)
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n"), nil
}

// needsSingleQuotes reports whether godotenv's output for value would parse
// back to something else. Single quotes cannot carry line breaks.
func needsSingleQuotes(value string) bool {
	if strings.ContainsAny(value, "\n\r") {
		return false
	}
	if strings.ContainsAny(value, "\\!$`") {
		return true
	}
	if n, err := strconv.Atoi(value); err == nil {
		return strconv.Itoa(n) != value
	}
	return false
}

// Save writes the parsed values to path in the Marshal format.
func (p *Parser) Save(path string) error {
	out, err := p.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out+"\n"), 0o644); err != nil {
		return fmt.Errorf("write env file %s: %w", path, err)
	}
	return nil
}
