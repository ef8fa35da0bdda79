// Package driver runs the SOL25 front end pipeline: parse, register
// classes, analyze, check the entry point and render.
package driver

import (
	"errors"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/chazu/sol25/compiler"
	"github.com/chazu/sol25/compiler/canon"
	"github.com/chazu/sol25/compiler/xmltree"
	"github.com/chazu/sol25/config"

	_ "github.com/tliron/commonlog/simple"
)

// Options configure one pipeline run.
type Options struct {
	Entry    compiler.EntryPoint
	Language string
	Indent   int
}

// DefaultOptions returns the options of the default configuration.
func DefaultOptions() Options {
	return OptionsFrom(config.Default())
}

// OptionsFrom extracts the pipeline options from a configuration.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Entry:    cfg.EntryPoint(),
		Language: cfg.Output.Language,
		Indent:   cfg.Output.Indent,
	}
}

// ConfigureLogging sets up the log backend from the configuration.
func ConfigureLogging(cfg *config.Config) {
	commonlog.Configure(cfg.Log.Verbosity, cfg.LogPath())
}

// Result is the outcome of a successful run.
type Result struct {
	RunID       string
	Program     *canon.Program
	Fingerprint string
	Output      []byte
}

// Run takes complete source text through every stage. It stops at the
// first failure; nothing is rendered unless all checks pass.
func Run(source string, opts Options) (*Result, error) {
	runID := uuid.NewString()
	log := commonlog.GetLogger("sol25.driver")
	log.Info("front end run started", "run", runID, "bytes", len(source))

	prog, err := compiler.Parse(source)
	if err != nil {
		return nil, failed(log, runID, "parse", err)
	}
	log.Debugf("parsed %d classes", len(prog.Classes))

	registry, err := compiler.BuildRegistry(prog)
	if err != nil {
		return nil, failed(log, runID, "registry", err)
	}

	if err := compiler.Analyze(prog, registry); err != nil {
		return nil, failed(log, runID, "analysis", err)
	}

	if err := compiler.CheckEntryPoint(registry, opts.Entry); err != nil {
		return nil, failed(log, runID, "entry", err)
	}

	var desc *string
	if text, ok := compiler.FirstComment(source); ok {
		desc = &text
	}
	tree := canon.Build(prog, canon.Options{Language: opts.Language, Description: desc})

	fingerprint, err := canon.FingerprintHex(tree)
	if err != nil {
		return nil, failed(log, runID, "fingerprint", compiler.NewError(compiler.ErrRender, "%v", err))
	}

	out, err := xmltree.Render(tree, xmltree.Options{Indent: opts.Indent})
	if err != nil {
		return nil, failed(log, runID, "render", err)
	}

	log.Info("front end run finished", "run", runID, "fingerprint", fingerprint)
	return &Result{
		RunID:       runID,
		Program:     tree,
		Fingerprint: fingerprint,
		Output:      out,
	}, nil
}

func failed(log commonlog.Logger, runID, stage string, err error) error {
	log.Info("front end run failed", "run", runID, "stage", stage, "error", err.Error())
	return err
}

// ExitCode maps an error returned by Run to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return compiler.ExitOK
	}
	var cerr *compiler.Error
	if errors.As(err, &cerr) {
		return cerr.ExitCode()
	}
	return compiler.ExitInternal
}
