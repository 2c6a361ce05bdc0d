package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   map[string]string
		want     string
	}{
		{
			name:     "basic substitution",
			template: "echo ${a} ${b}",
			values:   map[string]string{"a": "1", "b": "2"},
			want:     "echo 1 2",
		},
		{
			name:     "unresolved placeholder left literal",
			template: "echo ${a}",
			values:   map[string]string{},
			want:     "echo ${a}",
		},
		{
			name:     "partial mapping",
			template: "cp ${src} ${dst}",
			values:   map[string]string{"src": "a.txt"},
			want:     "cp a.txt ${dst}",
		},
		{
			name:     "repeated placeholder",
			template: "echo ${x} ${x}",
			values:   map[string]string{"x": "hi"},
			want:     "echo hi hi",
		},
		{
			name:     "value containing another placeholder is not re-expanded",
			template: "echo ${a}",
			values:   map[string]string{"a": "${b}", "b": "boom"},
			want:     "echo ${b}",
		},
		{
			name:     "unclosed placeholder left alone",
			template: "echo ${a",
			values:   map[string]string{"a": "1"},
			want:     "echo ${a",
		},
		{
			name:     "dollar without brace",
			template: "echo $a ${a}",
			values:   map[string]string{"a": "1"},
			want:     "echo $a 1",
		},
		{
			name:     "nil values",
			template: "echo ${a}",
			values:   nil,
			want:     "echo ${a}",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Substitute(tc.template, tc.values))
		})
	}
}
