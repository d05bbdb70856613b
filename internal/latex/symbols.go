package latex

import "unicode"

// LatexSymbols maps flat control sequences to their Unicode replacement.
var LatexSymbols = map[string]string{
	// Greek, lower case
	"\\alpha": "α", "\\beta": "β", "\\gamma": "γ", "\\delta": "δ", "\\epsilon": "ϵ",
	"\\varepsilon": "ε", "\\zeta": "ζ", "\\eta": "η", "\\theta": "θ", "\\vartheta": "ϑ",
	"\\iota": "ι", "\\kappa": "κ", "\\lambda": "λ", "\\mu": "μ", "\\nu": "ν", "\\xi": "ξ",
	"\\pi": "π", "\\varpi": "ϖ", "\\rho": "ρ", "\\varrho": "ϱ", "\\sigma": "σ",
	"\\varsigma": "ς", "\\tau": "τ", "\\upsilon": "υ", "\\phi": "ϕ", "\\varphi": "φ",
	"\\chi": "χ", "\\psi": "ψ", "\\omega": "ω",

	// Greek, upper case
	"\\Gamma": "Γ", "\\Delta": "Δ", "\\Theta": "Θ", "\\Lambda": "Λ", "\\Xi": "Ξ",
	"\\Pi": "Π", "\\Sigma": "Σ", "\\Upsilon": "Υ", "\\Phi": "Φ", "\\Psi": "Ψ",
	"\\Omega": "Ω",

	// Calculus and big operators
	"\\partial": "∂", "\\nabla": "∇", "\\infty": "∞", "\\sum": "∑", "\\prod": "∏",
	"\\coprod": "∐", "\\int": "∫", "\\iint": "∬", "\\iiint": "∭", "\\oint": "∮",
	"\\lim": "lim", "\\max": "max", "\\min": "min", "\\sup": "sup", "\\inf": "inf",
	"\\det": "det", "\\gcd": "gcd", "\\arg": "arg",

	// Named functions the normalizer may leave behind
	"\\sin": "sin", "\\cos": "cos", "\\tan": "tan", "\\cot": "cot", "\\sec": "sec",
	"\\csc": "csc", "\\sinh": "sinh", "\\cosh": "cosh", "\\tanh": "tanh",
	"\\arcsin": "asin", "\\arccos": "acos", "\\arctan": "atan", "\\exp": "exp",
	"\\log": "log", "\\ln": "ln",

	// Binary operators and relations
	"\\cdot": "·", "\\times": "×", "\\div": "÷", "\\pm": "±", "\\mp": "∓",
	"\\ast": "∗", "\\star": "⋆", "\\circ": "∘", "\\bullet": "∙", "\\oplus": "⊕",
	"\\otimes": "⊗", "\\wedge": "∧", "\\land": "∧", "\\vee": "∨", "\\lor": "∨",
	"\\neg": "¬", "\\lnot": "¬", "\\cap": "∩", "\\cup": "∪", "\\setminus": "∖",
	"\\leq": "≤", "\\le": "≤", "\\geq": "≥", "\\ge": "≥", "\\neq": "≠", "\\ne": "≠",
	"\\approx": "≈", "\\equiv": "≡", "\\sim": "∼", "\\simeq": "≃", "\\cong": "≅",
	"\\propto": "∝", "\\ll": "≪", "\\gg": "≫", "\\in": "∈", "\\notin": "∉",
	"\\ni": "∋", "\\subset": "⊂", "\\supset": "⊃", "\\subseteq": "⊆",
	"\\supseteq": "⊇", "\\mid": "∣", "\\parallel": "∥", "\\perp": "⊥",

	// Arrows
	"\\to": "→", "\\rightarrow": "→", "\\leftarrow": "←", "\\gets": "←",
	"\\Rightarrow": "⇒", "\\Leftarrow": "⇐", "\\leftrightarrow": "↔",
	"\\Leftrightarrow": "⇔", "\\iff": "⇔", "\\implies": "⇒", "\\mapsto": "↦",

	// Logic, sets and misc
	"\\forall": "∀", "\\exists": "∃", "\\nexists": "∄", "\\emptyset": "∅",
	"\\varnothing": "∅", "\\aleph": "ℵ", "\\hbar": "ℏ", "\\ell": "ℓ", "\\Re": "ℜ",
	"\\Im": "ℑ", "\\wp": "℘", "\\angle": "∠", "\\degree": "°", "\\prime": "′",
	"\\dots": "…", "\\ldots": "…", "\\cdots": "⋯", "\\vdots": "⋮", "\\ddots": "⋱",
	"\\lfloor": "⌊", "\\rfloor": "⌋", "\\lceil": "⌈", "\\rceil": "⌉",
	"\\langle": "⟨", "\\rangle": "⟩", "\\vert": "|", "\\Vert": "‖",

	// Escapes and spacing
	"\\{": "{", "\\}": "}", "\\%": "%", "\\$": "$", "\\&": "&", "\\#": "#", "\\_": "_",
	"\\|": "‖", "\\,": " ", "\\;": " ", "\\:": " ", "\\ ": " ", "\\!": "",
	"\\quad": " ", "\\qquad": " ", "\\\\": " ", "\\displaystyle": "",
	"\\limits": "", "\\nolimits": "",
}

// CombiningType says where a combining mark is attached.
type CombiningType int

const (
	// FirstChar attaches the mark after the first base character.
	FirstChar CombiningType = iota
	// LastChar attaches the mark after the whole text.
	LastChar
	// AllChars attaches the mark after every character.
	AllChars
)

// CombiningSpec describes an accent command.
type CombiningSpec struct {
	Char rune
	Type CombiningType
}

// Combining maps accent commands to combining marks.
var Combining = map[string]CombiningSpec{
	"\\hat":             {'\u0302', FirstChar},
	"\\widehat":         {'\u0302', FirstChar},
	"\\tilde":           {'\u0303', FirstChar},
	"\\widetilde":       {'\u0303', FirstChar},
	"\\bar":             {'\u0304', FirstChar},
	"\\overline":        {'\u0305', AllChars},
	"\\underline":       {'\u0332', AllChars},
	"\\breve":           {'\u0306', FirstChar},
	"\\dot":             {'\u0307', FirstChar},
	"\\ddot":            {'\u0308', FirstChar},
	"\\check":           {'\u030C', FirstChar},
	"\\acute":           {'\u0301', FirstChar},
	"\\grave":           {'\u0300', FirstChar},
	"\\mathring":        {'\u030A', FirstChar},
	"\\vec":             {'\u20D7', FirstChar},
	"\\overrightarrow":  {'\u20D7', LastChar},
}

// NotMap holds precomposed negations, keyed by the already translated symbol.
var NotMap = map[string]string{
	"=": "≠", "<": "≮", ">": "≯", "∈": "∉", "∋": "∌", "≤": "≰", "≥": "≱",
	"⊂": "⊄", "⊃": "⊅", "⊆": "⊈", "⊇": "⊉", "≡": "≢", "∃": "∄", "∼": "≁",
	"≈": "≉", "≃": "≄", "≅": "≇", "∣": "∤", "∥": "∦",
}

// Superscripts maps base runes to their superscript form.
var Superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴', '5': '⁵', '6': '⁶', '7': '⁷',
	'8': '⁸', '9': '⁹', '+': '⁺', '-': '⁻', '−': '⁻', '=': '⁼', '(': '⁽', ')': '⁾',
	'a': 'ᵃ', 'b': 'ᵇ', 'c': 'ᶜ', 'd': 'ᵈ', 'e': 'ᵉ', 'f': 'ᶠ', 'g': 'ᵍ', 'h': 'ʰ',
	'i': 'ⁱ', 'j': 'ʲ', 'k': 'ᵏ', 'l': 'ˡ', 'm': 'ᵐ', 'n': 'ⁿ', 'o': 'ᵒ', 'p': 'ᵖ',
	'r': 'ʳ', 's': 'ˢ', 't': 'ᵗ', 'u': 'ᵘ', 'v': 'ᵛ', 'w': 'ʷ', 'x': 'ˣ', 'y': 'ʸ',
	'z': 'ᶻ',
	'A': 'ᴬ', 'B': 'ᴮ', 'D': 'ᴰ', 'E': 'ᴱ', 'G': 'ᴳ', 'H': 'ᴴ', 'I': 'ᴵ', 'J': 'ᴶ',
	'K': 'ᴷ', 'L': 'ᴸ', 'M': 'ᴹ', 'N': 'ᴺ', 'O': 'ᴼ', 'P': 'ᴾ', 'R': 'ᴿ', 'T': 'ᵀ',
	'U': 'ᵁ', 'V': 'ⱽ', 'W': 'ᵂ',
	'α': 'ᵅ', 'β': 'ᵝ', 'γ': 'ᵞ', 'δ': 'ᵟ', 'θ': 'ᶿ', 'ι': 'ᶥ', 'φ': 'ᵠ', 'ϕ': 'ᵠ',
	'χ': 'ᵡ',
}

// Subscripts maps base runes to their subscript form.
var Subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄', '5': '₅', '6': '₆', '7': '₇',
	'8': '₈', '9': '₉', '+': '₊', '-': '₋', '−': '₋', '=': '₌', '(': '₍', ')': '₎',
	'a': 'ₐ', 'e': 'ₑ', 'h': 'ₕ', 'i': 'ᵢ', 'j': 'ⱼ', 'k': 'ₖ', 'l': 'ₗ', 'm': 'ₘ',
	'n': 'ₙ', 'o': 'ₒ', 'p': 'ₚ', 'r': 'ᵣ', 's': 'ₛ', 't': 'ₜ', 'u': 'ᵤ', 'v': 'ᵥ',
	'x': 'ₓ',
	'β': 'ᵦ', 'γ': 'ᵧ', 'ρ': 'ᵨ', 'φ': 'ᵩ', 'ϕ': 'ᵩ', 'χ': 'ᵪ',
}

var (
	superscriptRunes = invert(Superscripts)
	subscriptRunes   = invert(Subscripts)
)

func invert(m map[rune]rune) map[rune]bool {
	out := make(map[rune]bool, len(m))
	for _, v := range m {
		out[v] = true
	}
	return out
}

// IsSuperscript reports whether r is one of the superscript glyphs.
func IsSuperscript(r rune) bool { return superscriptRunes[r] }

// IsSubscript reports whether r is one of the subscript glyphs.
func IsSubscript(r rune) bool { return subscriptRunes[r] }

// LatexStyles maps font commands to per-rune replacements. A nil map means the
// command keeps its argument as-is.
var LatexStyles = map[string]map[rune]rune{
	"\\mathbb":   alphabet(0x1D538, 0x1D552, 0x1D7D8, doubleStruckHoles),
	"\\mathbf":   alphabet(0x1D400, 0x1D41A, 0x1D7CE, nil),
	"\\mathit":   alphabet(0x1D434, 0x1D44E, 0, map[rune]rune{'h': 'ℎ'}),
	"\\mathcal":  alphabet(0x1D49C, 0x1D4B6, 0, scriptHoles),
	"\\mathscr":  alphabet(0x1D49C, 0x1D4B6, 0, scriptHoles),
	"\\mathfrak": alphabet(0x1D504, 0x1D51E, 0, frakturHoles),
	"\\mathsf":   alphabet(0x1D5A0, 0x1D5BA, 0x1D7E2, nil),
	"\\mathtt":   alphabet(0x1D670, 0x1D68A, 0x1D7F6, nil),
	"\\mathrm":   nil,
	"\\textbf":   alphabet(0x1D400, 0x1D41A, 0x1D7CE, nil),
	"\\boldsymbol": alphabet(0x1D400, 0x1D41A, 0x1D7CE, nil),
}

// Letter-like symbols that Unicode placed outside the mathematical alphanumeric block.
var (
	doubleStruckHoles = map[rune]rune{
		'C': 'ℂ', 'H': 'ℍ', 'N': 'ℕ', 'P': 'ℙ', 'Q': 'ℚ', 'R': 'ℝ', 'Z': 'ℤ',
	}
	scriptHoles = map[rune]rune{
		'B': 'ℬ', 'E': 'ℰ', 'F': 'ℱ', 'H': 'ℋ', 'I': 'ℐ', 'L': 'ℒ', 'M': 'ℳ', 'R': 'ℛ',
		'e': 'ℯ', 'g': 'ℊ', 'o': 'ℴ',
	}
	frakturHoles = map[rune]rune{
		'C': 'ℭ', 'H': 'ℌ', 'I': 'ℑ', 'R': 'ℜ', 'Z': 'ℨ',
	}
)

// alphabet builds a styled alphabet from the code points of 'A', 'a' and '0'.
// A zero digit base leaves digits untouched.
func alphabet(upper, lower, digit rune, holes map[rune]rune) map[rune]rune {
	m := make(map[rune]rune, 62)
	for i := rune(0); i < 26; i++ {
		m['A'+i] = upper + i
		m['a'+i] = lower + i
	}
	if digit != 0 {
		for i := rune(0); i < 10; i++ {
			m['0'+i] = digit + i
		}
	}
	for k, v := range holes {
		m[k] = v
	}
	return m
}

// calligraphic holds every rune \mathcal and \mathscr can produce.
var calligraphic = func() map[rune]bool {
	out := make(map[rune]bool)
	for _, r := range LatexStyles["\\mathcal"] {
		out[r] = true
	}
	return out
}()

// IsCalligraphic reports whether r is a script/calligraphic letter.
func IsCalligraphic(r rune) bool {
	return calligraphic[r]
}

// isCombiningChar returns true if the rune is a Unicode combining character.
func isCombiningChar(r rune) bool {
	return unicode.Is(unicode.Mn, r) ||
		(r >= '\u0300' && r <= '\u036F') ||
		(r >= '\u1AB0' && r <= '\u1AFF') ||
		(r >= '\u1DC0' && r <= '\u1DFF') ||
		(r >= '\u20D0' && r <= '\u20FF') ||
		(r >= '\uFE20' && r <= '\uFE2F')
}
