// Package lsp implements a minimal language server for the two surface
// syntaxes in internal/surface: propositional formula files (.prop) and
// bit-vector constraint files (.bv). On open/change it parses and solves
// the document, republishing the result as a diagnostic.
package lsp

import (
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"satlp/internal/solverapi"
	"satlp/internal/surface"
)

// Handler implements the LSP server handlers for .prop/.bv formula files.
type Handler struct {
	mu      sync.RWMutex
	content map[string]string
}

// NewHandler creates and returns a new Handler instance.
func NewHandler() *Handler {
	return &Handler{
		content: make(map[string]string),
	}
}

// Initialize responds to the client's initialize request and advertises
// the server's capabilities.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

// Initialized is called after the client completes initialization.
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request.
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("LSP Shutdown")
	return nil
}

// SetTrace handles the client's trace-level negotiation; formula files
// have no request-level tracing to adjust.
func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen handles file open notifications.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("opened: %s\n", params.TextDocument.URI)
	return h.refresh(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// TextDocumentDidChange handles file change notifications. The server
// negotiates full-document sync, so the last content change carries the
// complete new text.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("changed: %s\n", params.TextDocument.URI)
	if len(params.ContentChanges) == 0 {
		return nil
	}
	last := params.ContentChanges[len(params.ContentChanges)-1]
	change, ok := last.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return fmt.Errorf("unexpected incremental content change for %s", params.TextDocument.URI)
	}
	return h.refresh(ctx, params.TextDocument.URI, change.Text)
}

// TextDocumentDidClose handles file close notifications.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("closed: %s\n", params.TextDocument.URI)
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}
	h.mu.Lock()
	delete(h.content, path)
	h.mu.Unlock()
	return nil
}

// TextDocumentSemanticTokensFull handles semantic token requests.
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	source := h.content[path]
	h.mu.RUnlock()

	tokens := collectSemanticTokens(isBVFile(path), source)

	var data []uint32
	var prevLine, prevStart uint32
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}
		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))
		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

// refresh reparses and resolves document at uri, publishing parse
// diagnostics or, on success, the solve result as an informational
// diagnostic.
func (h *Handler) refresh(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.content[path] = text
	h.mu.Unlock()

	diagnostics := h.diagnose(path, text)
	if ctx.Notify == nil {
		return nil
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
	return nil
}

func (h *Handler) diagnose(path, text string) []protocol.Diagnostic {
	if isBVFile(path) {
		conjunction, err := surface.ParseBV(path, text)
		if err != nil {
			return ConvertParseError(text, err)
		}
		conjuncts, err := surface.BuildBV(conjunction)
		if err != nil {
			return []protocol.Diagnostic{solveDiagnostic(err)}
		}
		solver := solverapi.NewBVSolver()
		for _, c := range conjuncts {
			if err := solver.Add(c); err != nil {
				return []protocol.Diagnostic{solveDiagnostic(err)}
			}
		}
		model, err := solver.Solve()
		if err != nil {
			return []protocol.Diagnostic{solveDiagnostic(err)}
		}
		return []protocol.Diagnostic{resultDiagnostic(fmt.Sprintf("SAT: %v", model))}
	}

	formula, err := surface.ParseProp(path, text)
	if err != nil {
		return ConvertParseError(text, err)
	}
	result := solverapi.SolvePropositional(surface.BuildProp(formula))
	if !result.SAT {
		return []protocol.Diagnostic{resultDiagnostic("UNSAT")}
	}
	return []protocol.Diagnostic{resultDiagnostic(fmt.Sprintf("SAT: %v", result.Model))}
}

func solveDiagnostic(err error) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    protocol.Range{},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("satlp-solver"),
		Message:  err.Error(),
	}
}

func resultDiagnostic(message string) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    protocol.Range{},
		Severity: ptrSeverity(protocol.DiagnosticSeverityInformation),
		Source:   ptrString("satlp-solver"),
		Message:  message,
	}
}

func isBVFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".bv")
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
