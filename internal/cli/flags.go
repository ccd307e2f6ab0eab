package cli

import "github.com/spf13/pflag"

// addScopeFlag registers the --scope flag shared by every item-addressed
// command. Callers still mark it required on the owning command.
func addScopeFlag(fs *pflag.FlagSet, scope *string) {
	fs.StringVar(scope, "scope", "", "Scope name or ID")
}
