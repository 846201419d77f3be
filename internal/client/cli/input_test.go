package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reader(s string) *bufio.Reader { return bufio.NewReader(strings.NewReader(s)) }

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name, in, want string
		wantErr        bool
	}{
		{name: "line", in: "  ann@example.com \n", want: "ann@example.com"},
		{name: "crlf", in: "ann\r\n", want: "ann"},
		{name: "no trailing newline", in: "last", want: "last"},
		{name: "empty input", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(reader(tt.in), "Email", &out)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Email\n> ", out.String())
		})
	}
}

func TestGetMultiline(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{name: "stops at empty line", in: "ran 5k\nfelt good\n\nignored\n", want: "ran 5k\nfelt good"},
		{name: "stops at eof", in: "one\ntwo", want: "one\ntwo"},
		{name: "nothing", in: "\n", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetMultiline(reader(tt.in), "Notes", &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Notes")
		})
	}
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out, "Password")
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	_, err = GetPassword(&out, "Password")
	require.Error(t, err)
}
