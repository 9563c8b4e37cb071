// Package format runs clang-format over a batch of files.
//
// The Invoker launches the formatter exactly once per batch. In check mode
// it asks for -output-replacements-xml and reports every file for which the
// formatter proposed at least one replacement, leaving files untouched. In
// apply mode it rewrites files in place with -i.
//
//	inv := format.NewInvoker("clang-format", "file", log)
//	report, err := inv.Run(ctx, files, format.ModeCheck)
//	if err != nil {
//	    return err // exit 1 on violations, formatter's own code on failure
//	}
//
// An empty batch is a successful no-op: the formatter is never launched.
package format
