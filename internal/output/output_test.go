package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_Status(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
		want  string
	}{
		{"icon", func(w *Writer) { w.Status("📁", "Location: .installcheck.yaml") }, "📁 Location: .installcheck.yaml\n"},
		{"no icon indents", func(w *Writer) { w.Status("", "next step") }, "   next step\n"},
		{"formatted", func(w *Writer) { w.Statusf("💾", "Backup: %s", "a.bak") }, "💾 Backup: a.bak\n"},
		{"success", func(w *Writer) { w.Successf("Snapshot of %s written", "php") }, "✅ Snapshot of php written\n"},
		{"warning", func(w *Writer) { w.Warningf("%s exists", "config") }, "⚠️  config exists\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a writer over a buffer
			buf := &bytes.Buffer{}

			// When: writing
			tt.write(New(buf))

			// Then: the exact line is produced
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
