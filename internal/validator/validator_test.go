package validator

import "testing"

type sample struct {
	Prompt string `validate:"required,min=1,max=10"`
	UserID string `validate:"omitempty,max=5"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantErr bool
	}{
		{"valid", sample{Prompt: "hello"}, false},
		{"valid with user", sample{Prompt: "hi", UserID: "u1"}, false},
		{"missing prompt", sample{}, true},
		{"oversized prompt", sample{Prompt: "0123456789x"}, true},
		{"oversized user", sample{Prompt: "hi", UserID: "toolong"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExplain(t *testing.T) {
	err := Validate(sample{})
	entries := Explain(err)
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Field != "Prompt" || entries[0].Message != "is required" {
		t.Errorf("entry = %+v", entries[0])
	}

	if Explain(nil) != nil {
		t.Error("Explain(nil) should be nil")
	}
}
