package cli

import "testing"

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"resolve", "crawl", "range", "reconcile"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestNewRootCmd_RequiredFlags(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"crawl"})
	if err := root.Execute(); err == nil {
		t.Error("crawl without --district succeeded, want required-flag error")
	}

	root = NewRootCmd()
	root.SetArgs([]string{"range"})
	if err := root.Execute(); err == nil {
		t.Error("range without --start/--end succeeded, want required-flag error")
	}
}
