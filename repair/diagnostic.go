package repair

// Diagnostic is one append-only log record produced while repairing
// malformed input. Diagnostics never influence the parse outcome; they
// exist purely to explain, after the fact, which heuristics fired.
type Diagnostic struct {
	// Message describes the heuristic that fired.
	Message string
	// Window holds up to 20 bytes of input centered on the cursor at the
	// time the diagnostic was recorded.
	Window string
}

const diagnosticWindowRadius = 10

func (p *Parser) log(message string) {
	if !p.logging {
		return
	}
	start := p.index - diagnosticWindowRadius
	if start < 0 {
		start = 0
	}
	end := p.index + diagnosticWindowRadius
	if n := p.src.Len(); end > n {
		end = n
	}
	window := make([]byte, 0, end-start)
	for i := start; i < end; i++ {
		window = append(window, p.src.At(i))
	}
	p.diagnostics = append(p.diagnostics, Diagnostic{Message: message, Window: string(window)})
}

// Diagnostics returns the diagnostic log accumulated so far. The slice
// is owned by the caller; the parser does not mutate entries after
// appending them.
func (p *Parser) Diagnostics() []Diagnostic {
	return p.diagnostics
}
