package toolbarcmd

import "testing"

func TestInsertMarkdownCommandValidate(t *testing.T) {
	cases := []struct {
		name    string
		action  string
		wantErr bool
	}{
		{name: "catalog entry", action: "bold"},
		{name: "case insensitive", action: " Heading "},
		{name: "missing", action: "", wantErr: true},
		{name: "unknown", action: "strikethrough", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := InsertMarkdownCommand{Action: tc.action}.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestMessageTypes(t *testing.T) {
	if (InsertMarkdownCommand{}).Type() != "medit.toolbar.insert_markdown" {
		t.Fatal("unexpected insert message type")
	}
	if (CopyToClipboardCommand{}).Type() != "medit.toolbar.copy_to_clipboard" {
		t.Fatal("unexpected copy message type")
	}
	if err := (CopyToClipboardCommand{}).Validate(); err != nil {
		t.Fatalf("copy command should always validate: %v", err)
	}
}
