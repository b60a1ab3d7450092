package behave_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/behave"
	"github.com/aretw0/behave/pkg/adapters/memory"
	"github.com/aretw0/behave/pkg/compiler"
	"github.com/aretw0/behave/pkg/domain"
	"github.com/aretw0/behave/pkg/dsl"
	"github.com/aretw0/behave/pkg/ports"
)

func greeter(t *testing.T) *domain.Behaviour {
	t.Helper()
	b := dsl.New("Greeter").
		Actor("oPC", "The player").
		Variable(domain.TypeString, "sLine", "")
	b.Verb("Greet").Does("Speak").When("GetIsPC(oPC)").Bind("oPC").Args("sLine").Then("Wave")
	b.Verb("Wave").Follower().Does("PlayAnimation").Then("Greet")
	behaviour, err := b.Build()
	require.NoError(t, err)
	return behaviour
}

func newWorkspace(t *testing.T, seed map[string]string) (*behave.Workspace, *memory.Store) {
	t.Helper()
	store := memory.NewStore(seed)
	ws, err := behave.New("mod", behave.WithStore(store))
	require.NoError(t, err)
	return ws, store
}

func TestWorkspace_RoundTrip(t *testing.T) {
	ws, _ := newWorkspace(t, nil)
	ctx := context.Background()
	want := greeter(t)

	require.NoError(t, ws.SaveBehaviour(ctx, want))

	got, diags, err := ws.LoadBehaviour(ctx, "b_greeter.nss")
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.True(t, domain.Equal(want, got))

	names, err := ws.ListBehaviours(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b_greeter.nss"}, names)
}

func TestWorkspace_FilenameRejection(t *testing.T) {
	ws, store := newWorkspace(t, map[string]string{
		"verbs.nss":      "/* Speak verb\nDescription: x\nVerbData Arguments:\n*/\n",
		"greeter.nss":    compiler.GenerateControlCode(greeter(t)),
		"util_verbs.nss": "/* Speak verb\nDescription: x\nVerbData Arguments:\n*/\n",
	})
	ctx := context.Background()
	b := greeter(t)

	_, _, err := ws.LoadCatalog(ctx, "verbs.nss")
	assert.ErrorIs(t, err, domain.ErrFilename)

	_, _, err = ws.LoadBehaviour(ctx, "greeter.nss")
	assert.ErrorIs(t, err, domain.ErrFilename)

	assert.ErrorIs(t, ws.SaveControl(ctx, "greeter.nss", b), domain.ErrFilename)
	assert.ErrorIs(t, ws.SaveStub(ctx, "b_greeter.nss", b), domain.ErrFilename)

	var fe *domain.FilenameError
	require.True(t, errors.As(ws.SaveControl(ctx, "z_b_greeter.nss", b), &fe))
	assert.Equal(t, "z_b_greeter.nss", fe.Path)

	// Nothing was written by the rejected saves.
	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"greeter.nss", "util_verbs.nss", "verbs.nss"}, names)

	catalog, _, err := ws.LoadCatalog(ctx, "util_verbs.nss")
	require.NoError(t, err)
	assert.Equal(t, []string{"Speak"}, catalog.Names())
}

func TestWorkspace_LoadErrors(t *testing.T) {
	ws, _ := newWorkspace(t, map[string]string{
		"b_broken.nss": "/*\nBEHAVIOUR: Broken\n    VERB1_FOLLOWERS: A\n*/\n",
	})
	ctx := context.Background()

	b, _, err := ws.LoadBehaviour(ctx, "b_broken.nss")
	assert.Nil(t, b)
	assert.ErrorIs(t, err, domain.ErrParse)
	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)

	_, _, err = ws.LoadBehaviour(ctx, "b_missing.nss")
	assert.ErrorIs(t, err, ports.ErrScriptNotFound)

	_, _, err = ws.LoadCatalog(ctx, "util_verbs.nss")
	assert.ErrorIs(t, err, ports.ErrScriptNotFound)
}

func TestWorkspace_SaveRejectsInvalid(t *testing.T) {
	ws, store := newWorkspace(t, nil)
	ctx := context.Background()

	b := greeter(t)
	b.Verb("Wave").Terminal = true

	err := ws.SaveBehaviour(ctx, b)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidBehaviour)

	names, _ := store.List(ctx)
	assert.Empty(t, names)
}

func TestWorkspace_SaveStubKeepsUserCode(t *testing.T) {
	ws, store := newWorkspace(t, nil)
	ctx := context.Background()
	b := greeter(t)
	require.NoError(t, ws.SaveBehaviour(ctx, b))

	stub, err := store.Read(ctx, "z_b_greeter.nss")
	require.NoError(t, err)
	edited := strings.Replace(string(stub),
		"int Checkcues_Wave()\n{\n    return TRUE;\n}",
		"int Checkcues_Wave()\n{\n    return GetIsDay();\n}", 1)
	require.NoError(t, store.Write(ctx, "z_b_greeter.nss", []byte(edited)))

	b.AddVerb("Bow").Follower = true
	b.Verb("Wave").AddFollower(b.Verb("Bow"))
	require.NoError(t, ws.SaveBehaviour(ctx, b))

	merged, err := store.Read(ctx, "z_b_greeter.nss")
	require.NoError(t, err)
	assert.Contains(t, string(merged), "return GetIsDay();")
	assert.Contains(t, string(merged), "int Checkcues_Bow()")

	control, err := store.Read(ctx, "b_greeter.nss")
	require.NoError(t, err)
	assert.Contains(t, string(control), "VERB3: Bow - Follower")
}

func TestWorkspace_PathQualifiedNames(t *testing.T) {
	ws, store := newWorkspace(t, nil)
	ctx := context.Background()
	b := greeter(t)

	require.NoError(t, ws.SaveControl(ctx, "mod/b_greeter.nss", b))
	require.NoError(t, ws.SaveStub(ctx, "mod/z_b_greeter.nss", b))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b_greeter.nss", "z_b_greeter.nss"}, names)

	got, _, err := ws.LoadBehaviour(ctx, "mod/b_greeter.nss")
	require.NoError(t, err)
	assert.True(t, domain.Equal(b, got))

	_, _, err = ws.LoadBehaviour(ctx, "b_dir/greeter.nss")
	var fe *domain.FilenameError
	assert.True(t, errors.As(err, &fe))
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, behave.Version)
	assert.NotContains(t, behave.Version, "\n")
}
