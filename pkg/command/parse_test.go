package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoizueta/grass-gis/pkg/command"
	grasserr "github.com/jgoizueta/grass-gis/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{
			name:     "keyword_arguments",
			line:     "r.resamp.stats input=map1 output=map2",
			expected: "r.resamp.stats input=map1 output=map2",
		},
		{
			name:     "flags_and_options",
			line:     "g.region -p res=30",
			expected: "g.region -p res=30",
		},
		{
			name:     "quoted_value",
			line:     `r.mapcalc expression="dest = src * 2"`,
			expected: `r.mapcalc expression="dest = src * 2"`,
		},
		{
			name:     "escaped_quote_in_value",
			line:     `r.mapcalc expression="a \"b\" c"`,
			expected: `r.mapcalc expression="a \"b\" c"`,
		},
		{
			name:     "extra_whitespace",
			line:     "  g.region   -p  ",
			expected: "g.region -p",
		},
		{
			name:     "long_flag",
			line:     "r.slope.aspect --interface-description",
			expected: "r.slope.aspect --interface-description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := command.Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cmd.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"whitespace_only", "   "},
		{"flag_as_name", "-p input=map1"},
		{"bare_argument", "g.region verbose"},
		{"empty_option_key", "g.region =value"},
		{"unterminated_quote", `r.mapcalc expression="dest`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := command.Parse(tt.line)
			require.Error(t, err)
			assert.True(t, grasserr.IsErrorCode(err, grasserr.ErrCommandParse))
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	cmd := command.New("v.db.select",
		command.Flag("c"),
		command.Option("map", "roads"),
		command.Option("where", "label = 'interstate'"),
	)

	parsed, err := command.Parse(cmd.String())
	require.NoError(t, err)
	assert.Equal(t, cmd.String(), parsed.String())

	where, ok := parsed.OptionValue("where")
	require.True(t, ok)
	assert.Equal(t, "label = 'interstate'", where)
}
