// Package lspserver exposes the repair parser over the Language Server
// Protocol: on every document change it repairs the buffer and publishes
// the diagnostics produced along the way, so an editor can show exactly
// which heuristics fired without blocking on a save.
package lspserver

import (
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/repairkit/jrepair/repair"
	"github.com/repairkit/jrepair/serialize"
)

const lsName = "jrepair"

// Server is a stdio-backed LSP server that repairs JSON documents on
// open, change and save, publishing one diagnostic per heuristic the
// parser applied.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu   sync.Mutex
	docs map[string]string
}

// New constructs a Server. version is reported in the LSP initialize
// response.
func New(version string) *Server {
	ls := &Server{
		version: version,
		docs:    make(map[string]string),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

// RunStdio blocks serving LSP requests over stdin/stdout.
func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.updateAndPublish(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.updateAndPublish(ctx, params.TextDocument.URI, textChange.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.updateAndPublish(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

// updateAndPublish repairs text, remembers it under uri, and publishes
// one LSP diagnostic per heuristic the repair parser applied.
func (ls *Server) updateAndPublish(ctx *glsp.Context, uri string, text string) {
	ls.mu.Lock()
	ls.docs[uri] = text
	ls.mu.Unlock()

	_, diags := repair.Parse([]byte(text), repair.WithLogging())

	lspDiags := make([]protocol.Diagnostic, 0, len(diags))
	zero := protocol.UInteger(0)
	zeroRange := protocol.Range{
		Start: protocol.Position{Line: zero, Character: zero},
		End:   protocol.Position{Line: zero, Character: zero},
	}
	sev := protocol.DiagnosticSeverityInformation
	source := lsName
	for _, d := range diags {
		message := d.Message + ": " + d.Window
		lspDiags = append(lspDiags, protocol.Diagnostic{
			Range:    zeroRange,
			Severity: &sev,
			Source:   &source,
			Message:  message,
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: lspDiags,
	})
}

// Repaired returns the two-space-indented, escaped JSON text produced by
// repairing the document currently open at uri, for use by an editor's
// "repair document" command.
func (ls *Server) Repaired(uri string) (string, bool) {
	ls.mu.Lock()
	text, ok := ls.docs[uri]
	ls.mu.Unlock()
	if !ok {
		return "", false
	}

	value, _ := repair.Parse([]byte(text))
	out, err := serialize.Marshal(value, true)
	if err != nil {
		return "", false
	}
	return string(out), true
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
