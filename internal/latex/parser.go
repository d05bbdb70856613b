package latex

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/riverfjs/unimath/internal/brace"
)

// Parser is a recursive-descent LaTeX→Unicode converter.
//
// Symbol mappings live in symbols.go. In lenient mode unknown commands are
// kept verbatim; in strict mode they fail with *UnsupportedConstructError.
type Parser struct {
	strict bool
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithStrict makes unknown constructs an error instead of passing through.
func WithStrict(strict bool) ParserOption {
	return func(p *Parser) {
		p.strict = strict
	}
}

// NewParser creates a new LaTeX parser.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Strict reports whether the parser rejects unknown constructs.
func (p *Parser) Strict() bool {
	return p.strict
}

// ──────────────────────────────────────────────
// Static helpers
// ──────────────────────────────────────────────

// TranslateCombining applies the combining mark of command to text.
func TranslateCombining(command, text string) string {
	sample, ok := Combining[command]
	if !ok {
		return text
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return text
	}

	switch sample.Type {
	case FirstChar:
		i := 1
		for i < len(runes) && (unicode.IsSpace(runes[i]) || isCombiningChar(runes[i])) {
			i++
		}
		if i >= len(runes) {
			return string(runes) + string(sample.Char)
		}
		return string(runes[:i]) + string(sample.Char) + string(runes[i:])

	case LastChar:
		return text + string(sample.Char)

	case AllChars:
		var result strings.Builder
		for _, r := range runes {
			result.WriteRune(r)
			if !unicode.IsSpace(r) {
				result.WriteRune(sample.Char)
			}
		}
		return result.String()
	}

	return text
}

// MakeNot negates an already translated symbol.
func MakeNot(negated string) string {
	trimmed := strings.TrimSpace(negated)
	if trimmed == "" {
		return " "
	}
	if notSymbol, ok := NotMap[trimmed]; ok {
		return notSymbol
	}
	r, size := utf8.DecodeRuneInString(trimmed)
	return string(r) + "\u0338" + trimmed[size:]
}

// ──────────────────────────────────────────────
// Superscripts and subscripts
// ──────────────────────────────────────────────

func tryMake(text string, table map[rune]rune, already func(rune) bool) string {
	if text == "" {
		return ""
	}
	var result strings.Builder
	for _, ch := range text {
		switch {
		case unicode.IsSpace(ch):
		case already(ch):
			result.WriteRune(ch)
		default:
			mapped, ok := table[ch]
			if !ok {
				return ""
			}
			result.WriteRune(mapped)
		}
	}
	return result.String()
}

// TryMakeSuperscript converts text entirely to superscript glyphs, or returns
// "" if some rune has no superscript form.
func TryMakeSuperscript(text string) string {
	return tryMake(text, Superscripts, IsSuperscript)
}

// TryMakeSubscript converts text entirely to subscript glyphs, or returns ""
// if some rune has no subscript form.
func TryMakeSubscript(text string) string {
	return tryMake(text, Subscripts, IsSubscript)
}

// partial raises or lowers what it can and brackets the whole with the
// matching raised/lowered parentheses.
func partial(text string, table map[rune]rune, open, close rune) string {
	var result strings.Builder
	result.WriteRune(open)
	for _, ch := range text {
		if mapped, ok := table[ch]; ok {
			result.WriteRune(mapped)
		} else {
			result.WriteRune(ch)
		}
	}
	result.WriteRune(close)
	return result.String()
}

// MakeSuperscript renders text as a superscript. Text with runes that have no
// superscript form is wrapped in ⁽…⁾ so no caret is ever emitted.
func MakeSuperscript(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if sup := TryMakeSuperscript(text); sup != "" {
		return sup
	}
	return partial(text, Superscripts, '⁽', '⁾')
}

// MakeSubscript renders text as a subscript, falling back to ₍…₎.
func MakeSubscript(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if sub := TryMakeSubscript(text); sub != "" {
		return sub
	}
	return partial(text, Subscripts, '₍', '₎')
}

// ──────────────────────────────────────────────
// Styles, fractions, roots
// ──────────────────────────────────────────────

// TranslateStyles applies a font command (\mathbb, \mathcal, ...) to text.
func TranslateStyles(command, text string) string {
	styleMap, ok := LatexStyles[command]
	if !ok || styleMap == nil {
		return text
	}

	var result strings.Builder
	for _, ch := range text {
		if styled, ok := styleMap[ch]; ok {
			result.WriteRune(styled)
		} else {
			result.WriteRune(ch)
		}
	}
	return result.String()
}

// MakeSqrt renders a root with an optional index.
func MakeSqrt(index, radicand string) string {
	var radix string
	switch index {
	case "", "2":
		radix = "√"
	case "3":
		radix = "∛"
	case "4":
		radix = "∜"
	default:
		radix = MakeSuperscript(index) + "√"
	}
	return radix + MaybeParenthesize(strings.TrimSpace(radicand))
}

// MakeFraction renders num/den on one line.
func MakeFraction(numerator, denominator string) string {
	n, d := strings.TrimSpace(numerator), strings.TrimSpace(denominator)
	if n == "" && d == "" {
		return ""
	}
	return MaybeParenthesize(n) + "/" + MaybeParenthesize(d)
}

// MaybeParenthesize wraps text in parentheses unless it is a single term.
func MaybeParenthesize(text string) string {
	if IsAtomic(text) {
		return text
	}
	return "(" + text + ")"
}

// IsAtomic reports whether text reads as one term: a juxtaposition of letters,
// digits, raised/lowered glyphs and prefix symbols like ∂ or √, or a single
// parenthesised group.
func IsAtomic(text string) bool {
	if text == "" {
		return true
	}
	if brace.Parens.Enclosed(text) {
		return true
	}
	for _, r := range text {
		if !IsAtomicRune(r) {
			return false
		}
	}
	return true
}

// IsAtomicRune reports whether r can be part of a single term.
func IsAtomicRune(r rune) bool {
	switch r {
	case '_', '∂', '∇', '√', '∛', '∜', '∞', '′', '!', '.':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r) || isCombiningChar(r) ||
		IsSuperscript(r) || IsSubscript(r)
}

// TranslateEscape looks up a LaTeX symbol.
func TranslateEscape(name string) string {
	if symbol, ok := LatexSymbols[name]; ok {
		return symbol
	}
	return name
}

// ──────────────────────────────────────────────
// Parser core
// ──────────────────────────────────────────────

// Parse converts latex to Unicode.
func (p *Parser) Parse(latex string) (string, error) {
	return p.parse(latex)
}

// Convert converts latex and returns the input unchanged if it cannot.
func (p *Parser) Convert(latex string) string {
	out, err := p.parse(latex)
	if err != nil {
		return latex
	}
	return out
}

func (p *Parser) parse(latex string) (string, error) {
	var result []string
	i := 0

	for i < len(latex) {
		c := latex[i]
		switch {
		case c == '\\':
			command, next := p.parseCommand(latex, i)
			if isFracCommand(command) {
				spaceAfterDigit(result)
			}
			handled, next, err := p.handleCommand(command, latex, next)
			if err != nil {
				return "", err
			}
			result = append(result, handled)
			i = next

		case c == '{':
			block, next, err := p.parseBlock(latex, i)
			if err != nil {
				return "", err
			}
			result = append(result, block)
			i = next

		case c == '}':
			if p.strict {
				return "", &brace.UnbalancedDelimiterError{Fragment: latex, Offset: i, Delim: c}
			}
			i++

		case c == '_' || c == '^':
			i++
			if i >= len(latex) {
				if p.strict {
					return "", &UnsupportedConstructError{Construct: string(c), Fragment: latex, Reason: "missing argument"}
				}
				result = append(result, string(c))
				continue
			}
			arg, next, err := p.parseBlock(latex, i)
			if err != nil {
				return "", err
			}
			i = next
			if c == '_' {
				result = append(result, MakeSubscript(arg))
			} else {
				result = append(result, MakeSuperscript(arg))
			}

		case unicode.IsSpace(rune(c)):
			for i < len(latex) && unicode.IsSpace(rune(latex[i])) {
				i++
			}
			result = append(result, " ")

		default:
			r, size := utf8.DecodeRuneInString(latex[i:])
			result = append(result, string(r))
			i += size
		}
	}

	return strings.Join(result, ""), nil
}

// spaceAfterDigit separates a mixed number like 2\frac{1}{2} → "2 1/2".
func spaceAfterDigit(result []string) {
	if len(result) == 0 {
		return
	}
	last := result[len(result)-1]
	if last == "" {
		return
	}
	if ch := last[len(last)-1]; ch >= '0' && ch <= '9' {
		result[len(result)-1] += " "
	}
}

func isFracCommand(command string) bool {
	return command == "\\frac" || command == "\\dfrac" || command == "\\tfrac"
}

// ──────────────────────────────────────────────
// Command dispatch (ordered by priority)
// ──────────────────────────────────────────────

var textCommands = map[string]bool{
	"\\text": true, "\\operatorname": true, "\\mbox": true,
	"\\textrm": true, "\\textup": true, "\\mathop": true, "\\textit": true,
}

var cancelCommands = map[string]bool{
	"\\cancel": true, "\\bcancel": true, "\\xcancel": true, "\\sout": true,
}

func (p *Parser) handleCommand(command, latex string, index int) (string, int, error) {
	// 1. symbol table
	if _, ok := LatexSymbols[command]; ok {
		return TranslateEscape(command), index, nil
	}

	// 2. \not prefix
	if command == "\\not" {
		if index >= len(latex) {
			return "\u0338", index, nil
		}
		if latex[index] == '\\' {
			nextCmd, nextIdx := p.parseCommand(latex, index)
			symbol, ok := LatexSymbols[nextCmd]
			if !ok {
				symbol = nextCmd
			}
			return MakeNot(symbol), nextIdx, nil
		}
		r, size := utf8.DecodeRuneInString(latex[index:])
		return MakeNot(string(r)), index + size, nil
	}

	// 3. accents
	if _, ok := Combining[command]; ok {
		arg, next, err := p.parseBlock(latex, index)
		if err != nil {
			return "", 0, err
		}
		return TranslateCombining(command, arg), next, nil
	}

	// 4. \frac{num}{den}
	if isFracCommand(command) {
		numer, idx1, err := p.parseBlock(latex, index)
		if err != nil {
			return "", 0, err
		}
		denom, idx2, err := p.parseBlock(latex, idx1)
		if err != nil {
			return "", 0, err
		}
		return MakeFraction(numer, denom), idx2, nil
	}

	// 5. \sqrt[n]{x}
	if command == "\\sqrt" {
		option, idx1, err := p.parseOptional(latex, index)
		if err != nil {
			return "", 0, err
		}
		param, idx2, err := p.parseBlock(latex, idx1)
		if err != nil {
			return "", 0, err
		}
		return MakeSqrt(strings.TrimSpace(option), param), idx2, nil
	}

	// 6. font styles
	if _, ok := LatexStyles[command]; ok {
		text, next, err := p.parseBlock(latex, index)
		if err != nil {
			return "", 0, err
		}
		return TranslateStyles(command, text), next, nil
	}

	// 7. text pass-through
	if textCommands[command] {
		return p.parseBlock(latex, index)
	}

	// 8. \left / \right
	if command == "\\left" || command == "\\right" {
		delim, next := p.parseDelimiter(latex, index)
		return delim, next, nil
	}

	switch command {
	case "\\binom", "\\tbinom", "\\dbinom":
		n, idx1, err := p.parseBlock(latex, index)
		if err != nil {
			return "", 0, err
		}
		k, idx2, err := p.parseBlock(latex, idx1)
		if err != nil {
			return "", 0, err
		}
		return "C(" + n + "," + k + ")", idx2, nil

	case "\\boxed":
		text, next, err := p.parseBlock(latex, index)
		return "[" + text + "]", next, err

	case "\\pmod":
		text, next, err := p.parseBlock(latex, index)
		return " (mod " + text + ")", next, err

	case "\\phantom", "\\hphantom", "\\vphantom":
		text, next, err := p.parseBlock(latex, index)
		n := utf8.RuneCountInString(text)
		if n < 1 {
			n = 1
		}
		return strings.Repeat(" ", n), next, err

	case "\\overset", "\\stackrel", "\\underset":
		mark, idx1, err := p.parseBlock(latex, index)
		if err != nil {
			return "", 0, err
		}
		base, idx2, err := p.parseBlock(latex, idx1)
		if err != nil {
			return "", 0, err
		}
		if command == "\\underset" {
			return base + MakeSubscript(mark), idx2, nil
		}
		return base + MakeSuperscript(mark), idx2, nil

	case "\\color":
		_, next, err := p.parseBlock(latex, index)
		return "", next, err

	case "\\textcolor":
		_, idx1, err := p.parseBlock(latex, index)
		if err != nil {
			return "", 0, err
		}
		return p.parseBlock(latex, idx1)

	case "\\overbrace":
		text, next, err := p.parseBlock(latex, index)
		return TranslateCombining("\\overline", text), next, err

	case "\\underbrace":
		text, next, err := p.parseBlock(latex, index)
		return TranslateCombining("\\underline", text), next, err

	case "\\xrightarrow", "\\xleftarrow":
		arrow := "→"
		if command == "\\xleftarrow" {
			arrow = "←"
		}
		text, next, err := p.parseBlock(latex, index)
		if strings.TrimSpace(text) != "" {
			return arrow + "(" + text + ")", next, err
		}
		return arrow, next, err

	case "\\begin":
		envName, idx1 := p.parseEnvName(latex, index)
		content, idx2 := p.parseEnvironment(latex, idx1, envName)
		out, err := p.renderEnvironment(envName, content)
		return out, idx2, err

	case "\\end":
		_, next := p.parseEnvName(latex, index)
		return "", next, nil
	}

	if cancelCommands[command] {
		text, next, err := p.parseBlock(latex, index)
		return TranslateCombining("\\underline", text), next, err
	}

	if p.strict {
		return "", 0, &UnsupportedConstructError{Construct: command, Fragment: latex}
	}
	return command, index, nil
}

// ──────────────────────────────────────────────
// Low-level scanning
// ──────────────────────────────────────────────

var commandRegex = regexp.MustCompile(`^\\([a-zA-Z]+\*?|.)`)

// parseCommand reads one control sequence. Whitespace after a control word is
// a terminator and is consumed with it.
func (p *Parser) parseCommand(latex string, start int) (string, int) {
	match := commandRegex.FindString(latex[start:])
	if match == "" {
		return "\\", start + 1
	}
	next := start + len(match)
	if isLetter(match[len(match)-1]) {
		next = skipSpaces(latex, next)
	}
	return match, next
}

func (p *Parser) parseBlock(latex string, start int) (string, int, error) {
	start = skipSpaces(latex, start)
	if start >= len(latex) {
		if p.strict {
			return "", start, &UnsupportedConstructError{Construct: "{", Fragment: latex, Reason: "missing argument"}
		}
		return "", start, nil
	}
	if latex[start] != '{' {
		// a bare token is a one-token argument, as in x^2
		if latex[start] == '\\' {
			cmd, next := p.parseCommand(latex, start)
			return p.handleCommand(cmd, latex, next)
		}
		r, size := utf8.DecodeRuneInString(latex[start:])
		return string(r), start + size, nil
	}

	end, err := brace.FindMatchingClose(latex, start)
	if err != nil {
		if p.strict {
			return "", 0, err
		}
		inner, perr := p.parse(latex[start+1:])
		return inner, len(latex), perr
	}
	inner, err := p.parse(latex[start+1 : end])
	if err != nil {
		return "", 0, err
	}
	return inner, end + 1, nil
}

func (p *Parser) parseOptional(latex string, start int) (string, int, error) {
	if start >= len(latex) || latex[start] != '[' {
		return "", start, nil
	}
	end, err := brace.Pair{Open: '[', Close: ']'}.FindMatchingClose(latex, start)
	if err != nil {
		var ude *brace.UnbalancedDelimiterError
		if errors.As(err, &ude) && !p.strict {
			return "", start + 1, nil
		}
		return "", 0, err
	}
	inner, err := p.parse(latex[start+1 : end])
	return inner, end + 1, err
}

func (p *Parser) parseDelimiter(latex string, index int) (string, int) {
	if index >= len(latex) {
		return "", index
	}
	ch := latex[index]
	if ch == '\\' {
		match := commandRegex.FindString(latex[index:])
		if match == "" {
			return "\\", index + 1
		}
		symbol, ok := LatexSymbols[match]
		if !ok {
			symbol = strings.TrimPrefix(match, "\\")
		}
		return symbol, index + len(match)
	}
	if ch == '.' {
		return "", index + 1 // invisible delimiter
	}
	r, size := utf8.DecodeRuneInString(latex[index:])
	return string(r), index + size
}

func skipSpaces(latex string, i int) int {
	for i < len(latex) && unicode.IsSpace(rune(latex[i])) {
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ──────────────────────────────────────────────
// Environments
// ──────────────────────────────────────────────

func (p *Parser) parseEnvName(latex string, index int) (string, int) {
	if index < len(latex) && latex[index] == '{' {
		end, err := brace.FindMatchingClose(latex, index)
		if err == nil {
			return latex[index+1 : end], end + 1
		}
	}
	return "", index
}

func (p *Parser) parseEnvironment(latex string, index int, envName string) (string, int) {
	endMarker := "\\end{" + envName + "}"
	endPos := strings.Index(latex[index:], endMarker)
	if endPos == -1 {
		return latex[index:], len(latex)
	}
	return latex[index : index+endPos], index + endPos + len(endMarker)
}

// matrix-like environments → (left, right) delimiters
var matrixTypes = map[string][2]string{
	"matrix":      {"", ""},
	"pmatrix":     {"(", ")"},
	"bmatrix":     {"[", "]"},
	"Bmatrix":     {"⦃", "⦄"},
	"vmatrix":     {"|", "|"},
	"Vmatrix":     {"‖", "‖"},
	"smallmatrix": {"", ""},
	"array":       {"", ""},
}

var alignTypes = map[string]bool{
	"align": true, "align*": true, "aligned": true, "gather": true, "gathered": true,
	"equation": true, "equation*": true, "multline": true, "split": true,
}

func (p *Parser) renderEnvironment(envName, content string) (string, error) {
	if delims, ok := matrixTypes[envName]; ok {
		if envName == "array" {
			content = dropColumnSpec(content)
		}
		return p.renderMatrix(content, delims[0], delims[1])
	}
	if envName == "cases" {
		return p.renderCases(content)
	}
	if alignTypes[envName] {
		return p.renderRows(strings.ReplaceAll(content, "&", " "), "; ")
	}
	if p.strict {
		return "", &UnsupportedConstructError{Construct: "\\begin{" + envName + "}", Fragment: content}
	}
	return p.parse(content)
}

func dropColumnSpec(content string) string {
	stripped := strings.TrimSpace(content)
	if strings.HasPrefix(stripped, "{") {
		if end, err := brace.FindMatchingClose(stripped, 0); err == nil {
			return stripped[end+1:]
		}
	}
	return content
}

func (p *Parser) renderRows(content, joiner string) (string, error) {
	var rendered []string
	for _, row := range strings.Split(content, "\\\\") {
		trimmed := strings.TrimSpace(row)
		if trimmed == "" {
			continue
		}
		out, err := p.parse(trimmed)
		if err != nil {
			return "", err
		}
		rendered = append(rendered, strings.TrimSpace(out))
	}
	return strings.Join(rendered, joiner), nil
}

func (p *Parser) renderMatrix(content, left, right string) (string, error) {
	var rows []string
	for _, row := range strings.Split(content, "\\\\") {
		trimmed := strings.TrimSpace(row)
		if trimmed == "" {
			continue
		}
		var cells []string
		for _, cell := range strings.Split(trimmed, "&") {
			out, err := p.parse(strings.TrimSpace(cell))
			if err != nil {
				return "", err
			}
			cells = append(cells, strings.TrimSpace(out))
		}
		rows = append(rows, strings.Join(cells, ", "))
	}
	return left + strings.Join(rows, "; ") + right, nil
}

func (p *Parser) renderCases(content string) (string, error) {
	var parts []string
	for _, row := range strings.Split(content, "\\\\") {
		trimmed := strings.TrimSpace(row)
		if trimmed == "" {
			continue
		}
		segments := strings.SplitN(trimmed, "&", 2)
		val, err := p.parse(strings.TrimSpace(segments[0]))
		if err != nil {
			return "", err
		}
		part := strings.TrimSpace(val)
		if len(segments) > 1 {
			cond, err := p.parse(strings.TrimSpace(segments[1]))
			if err != nil {
				return "", err
			}
			if cond = strings.TrimSpace(cond); cond != "" {
				part += " " + cond
			}
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; "), nil
}
