package main

import (
	"os"
	"strings"

	"gather-cli/internal/cli"
)

func isCardID(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "card-") {
		return false
	}
	// Keep it permissive; ids are generated but users may paste variants.
	return len(s) > len("card-")
}

// rewriteDirectCardLookupArgs makes `gather <card-id>` behave like
// `gather cards show <card-id>`.
//
// Cobra treats the first non-flag token as a subcommand, so we rewrite argv
// before parsing. Persistent flags may precede the card id, so we look for
// the first positional token rather than argv[1].
func rewriteDirectCardLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Minimal persistent-flag awareness. Unknown flags are skipped without
	// consuming a value, to avoid accidentally swallowing the card id.
	valueFlags := map[string]bool{
		"--dir":     true,
		"--backend": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// Stop flag parsing; next token (if any) is the first positional.
			if i+1 < len(argv) && isCardID(argv[i+1]) {
				out := make([]string, 0, len(argv)+2)
				out = append(out, argv[:i+1]...)
				out = append(out, "cards", "show")
				out = append(out, argv[i+1:]...)
				return out
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			// --flag=value form
			if strings.Contains(a, "=") {
				continue
			}
			if boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
				continue
			}
			continue
		}

		// First positional token.
		if isCardID(a) {
			out := make([]string, 0, len(argv)+2)
			out = append(out, argv[:i]...)
			out = append(out, "cards", "show")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectCardLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
