package command

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears an environment variable for the duration of the test,
// restoring whatever was there before.
func unsetenv(t *testing.T, name string) {
	t.Helper()
	t.Setenv(name, "")
	require.NoError(t, os.Unsetenv(name))
}

func TestLess_FlagsDefault(t *testing.T) {
	unsetenv(t, "LESS")

	env := Less{}.EnvironmentVariables(Config{Color: true})
	assert.Equal(t, map[string]string{"LESS": "RFX"}, env)
}

func TestLess_FlagsNoColor(t *testing.T) {
	unsetenv(t, "LESS")

	env := Less{}.EnvironmentVariables(Config{})
	assert.Equal(t, map[string]string{"LESS": "FX"}, env)
}

func TestLess_FlagsLineBuffering(t *testing.T) {
	unsetenv(t, "LESS")

	// Quit-if-one-screen makes less buffer a whole screen, so an
	// explicit line-buffering request must drop the F flag.
	env := Less{}.EnvironmentVariables(Config{Color: true, LineBufferingRequested: true})
	assert.Equal(t, map[string]string{"LESS": "RX"}, env)
}

func TestLess_FlagsReset(t *testing.T) {
	unsetenv(t, "LESS")

	// A terminal reset request drops both F and X, letting less restore
	// the screen itself.
	env := Less{}.EnvironmentVariables(Config{Color: true, ResetTerminal: true})
	assert.Equal(t, map[string]string{"LESS": "R"}, env)
}

func TestLess_AllFlagsSuppressed(t *testing.T) {
	unsetenv(t, "LESS")

	env := Less{}.EnvironmentVariables(Config{
		LineBufferingRequested: true,
		ResetTerminal:          true,
	})
	assert.Nil(t, env)
}

func TestLess_UserOverrideWins(t *testing.T) {
	t.Setenv("LESS", "MqK")

	// The user has taken explicit control; synthesize nothing and let
	// the subprocess inherit their value verbatim.
	env := Less{}.EnvironmentVariables(Config{Color: true})
	assert.Nil(t, env)
}

func TestLess_EmptyOverrideStillWins(t *testing.T) {
	t.Setenv("LESS", "")

	env := Less{}.EnvironmentVariables(Config{Color: true})
	assert.Nil(t, env)
}

func TestLess_Argv(t *testing.T) {
	assert.Equal(t, []string{"less"}, Less{}.Argv())
}

func TestMore_NoEnvironment(t *testing.T) {
	assert.Nil(t, More{}.EnvironmentVariables(Config{Color: true, ResetTerminal: true}))
}

func TestMore_Argv(t *testing.T) {
	if runtime.GOOS == "windows" {
		assert.Equal(t, []string{"more.com"}, More{}.Argv())
		return
	}
	assert.Equal(t, []string{"more"}, More{}.Argv())
}

func TestLV_Color(t *testing.T) {
	unsetenv(t, "LV")

	env := LV{}.EnvironmentVariables(Config{Color: true})
	assert.Equal(t, map[string]string{"LV": "-c"}, env)
}

func TestLV_NoColor(t *testing.T) {
	unsetenv(t, "LV")

	assert.Nil(t, LV{}.EnvironmentVariables(Config{}))
}

func TestLV_UserOverrideWins(t *testing.T) {
	t.Setenv("LV", "-Au8")

	assert.Nil(t, LV{}.EnvironmentVariables(Config{Color: true}))
}

func TestCustom_SplitsCommandLine(t *testing.T) {
	assert.Equal(t, []string{"less", "-i", "--mouse"}, NewCustom("less -i --mouse").Argv())
}

func TestCustom_EmptyCommandLine(t *testing.T) {
	assert.Empty(t, NewCustom("").Argv())
	assert.Empty(t, NewCustom("   ").Argv())
}

func TestCustom_EnvironmentUnion(t *testing.T) {
	unsetenv(t, "LESS")
	unsetenv(t, "LV")

	// An unknown pager gets the union of the variables less and lv
	// understand; other pagers ignore them.
	env := NewCustom("mypager").EnvironmentVariables(Config{Color: true})
	assert.Equal(t, map[string]string{"LESS": "RFX", "LV": "-c"}, env)
}

func TestCustom_EnvironmentEmpty(t *testing.T) {
	t.Setenv("LESS", "R")
	t.Setenv("LV", "-c")

	assert.Nil(t, NewCustom("mypager").EnvironmentVariables(Config{Color: true}))
}

func TestUserSpecified_FirstSetWins(t *testing.T) {
	unsetenv(t, "TEST_PAGER_A")
	t.Setenv("TEST_PAGER_B", "more -s")
	t.Setenv("TEST_PAGER_C", "less")

	cmd := UserSpecified("TEST_PAGER_A", "TEST_PAGER_B", "TEST_PAGER_C")
	assert.Equal(t, []string{"more", "-s"}, cmd.Argv())
}

func TestUserSpecified_NoneSet(t *testing.T) {
	unsetenv(t, "TEST_PAGER_A")

	cmd := UserSpecified("TEST_PAGER_A")
	assert.Equal(t, Platform(), cmd)
}

func TestPlatform_Default(t *testing.T) {
	switch runtime.GOOS {
	case "windows", "aix":
		assert.Equal(t, More{}, Platform())
	default:
		assert.Equal(t, Less{}, Platform())
	}
}

func TestDefault_HonorsPagerVariable(t *testing.T) {
	t.Setenv("PAGER", "more")

	assert.Equal(t, []string{"more"}, Default().Argv())
}

func TestDefault_FallsBackToPlatform(t *testing.T) {
	unsetenv(t, "PAGER")

	assert.Equal(t, Platform().Argv(), Default().Argv())
}
