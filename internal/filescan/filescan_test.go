package filescan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QTest-hq/classscan/internal/resolver"
	"github.com/QTest-hq/classscan/internal/scanner"
	"github.com/QTest-hq/classscan/internal/token"
	"github.com/QTest-hq/classscan/internal/token/tokentest"
)

func loadModels(t *testing.T) []token.Token {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "models.php"))
	require.NoError(t, err)
	return tokentest.Lex(string(data))
}

func TestScan_FindsDeclarations(t *testing.T) {
	file, err := Scan(loadModels(t))
	require.NoError(t, err)
	require.Len(t, file.Classes, 3)

	var names []string
	for _, c := range file.Classes {
		name, err := c.Scanner.Name()
		require.NoError(t, err)
		names = append(names, name)
		assert.Equal(t, `App\Models`, c.Namespace)
	}
	assert.Equal(t, []string{`App\Models\User`, `App\Models\Named`, `App\Models\Base`}, names)
}

func TestScan_ResolvesThroughUseStatements(t *testing.T) {
	file, err := Scan(loadModels(t))
	require.NoError(t, err)

	user := file.Classes[0]
	assert.Equal(t, resolver.ImportMap{
		"Model":   `Illuminate\Database\Eloquent\Model`,
		"HasName": `App\Contracts\HasName`,
		"Audit":   `App\Contracts\Auditable`,
	}, user.Imports)

	final, _ := user.Scanner.IsFinal()
	assert.True(t, final)

	parent, err := user.Scanner.Parent()
	require.NoError(t, err)
	assert.Equal(t, `Illuminate\Database\Eloquent\Model`, parent)

	interfaces, _ := user.Scanner.Interfaces()
	assert.Equal(t, []string{`App\Contracts\HasName`, `App\Contracts\Auditable`}, interfaces)

	constants, _ := user.Scanner.Constants()
	assert.Equal(t, []string{"TABLE"}, constants)

	methods, _ := user.Scanner.Methods()
	assert.Equal(t, []string{"name"}, methods)
}

func TestScan_ModifiersAndAnonymousClasses(t *testing.T) {
	file, err := Scan(loadModels(t))
	require.NoError(t, err)

	base := file.Classes[2]
	abstract, _ := base.Scanner.IsAbstract()
	assert.True(t, abstract)
	assert.True(t, base.Scanner.Tokens()[0].Is(token.Abstract))

	methods, _ := base.Scanner.Methods()
	assert.Equal(t, []string{"make"}, methods)

	iface := file.Classes[1]
	isIface, _ := iface.Scanner.IsInterface()
	assert.True(t, isIface)
	interfaces, _ := iface.Scanner.Interfaces()
	assert.Equal(t, []string{`App\Contracts\HasName`}, interfaces)
}

func TestScan_Filter(t *testing.T) {
	tests := []struct {
		pattern  string
		expected int
	}{
		{`App\Models\*`, 3},
		{`App\Models\U*`, 1},
		{`App\*`, 0},
		{`App\**`, 3},
		{`**\Named`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			file, err := Scan(loadModels(t), WithFilter(tt.pattern))
			require.NoError(t, err)
			assert.Len(t, file.Classes, tt.expected)
		})
	}
}

func TestScan_InvalidFilter(t *testing.T) {
	_, err := Scan(loadModels(t), WithFilter("App["))
	assert.Error(t, err)
}

func TestScan_BracedNamespaces(t *testing.T) {
	src := `<?php
namespace One {
    use Lib\Thing;
    class A extends Thing {}
}
namespace {
    class B extends Thing {}
}`
	file, err := Scan(tokentest.Lex(src), WithImports(resolver.ImportMap{"Seed": `X\Seed`}))
	require.NoError(t, err)
	require.Len(t, file.Classes, 2)

	a := file.Classes[0]
	assert.Equal(t, "One", a.Namespace)
	parent, _ := a.Scanner.Parent()
	assert.Equal(t, `Lib\Thing`, parent)
	assert.Equal(t, `X\Seed`, a.Imports["Seed"])

	b := file.Classes[1]
	assert.Equal(t, "", b.Namespace)
	parent, _ = b.Scanner.Parent()
	assert.Equal(t, "Thing", parent)
}

func TestScan_DefaultNamespace(t *testing.T) {
	file, err := Scan(tokentest.Lex("class A {}"), WithNamespace(`\Default\Ns\`))
	require.NoError(t, err)
	require.Len(t, file.Classes, 1)

	name, _ := file.Classes[0].Scanner.Name()
	assert.Equal(t, `Default\Ns\A`, name)
}

func TestScan_Unclosed(t *testing.T) {
	_, err := Scan(tokentest.Lex("class A { public function f() {"))
	assert.Error(t, err)
}

func TestScan_ClosureUseIsNotAnImport(t *testing.T) {
	src := `<?php
namespace A;
$f = function () use ($x) { return 1; };
namespace B;
use Vendor\Thing;
class Foo extends Thing {}`
	file, err := Scan(tokentest.Lex(src))
	require.NoError(t, err)
	require.Len(t, file.Classes, 1)

	foo := file.Classes[0]
	assert.Equal(t, "B", foo.Namespace)
	assert.Equal(t, resolver.ImportMap{"Thing": `Vendor\Thing`}, foo.Imports)

	name, err := foo.Scanner.Name()
	require.NoError(t, err)
	assert.Equal(t, `B\Foo`, name)

	parent, _ := foo.Scanner.Parent()
	assert.Equal(t, `Vendor\Thing`, parent)
}

func TestScan_ReadonlyClass(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"final readonly", "final readonly class Foo {}"},
		{"readonly final", "readonly final class Foo {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := Scan(tokentest.Lex(tt.src))
			require.NoError(t, err)
			require.Len(t, file.Classes, 1)

			c := file.Classes[0]
			assert.Equal(t, 0, c.TokenStart)

			final, err := c.Scanner.IsFinal()
			require.NoError(t, err)
			assert.True(t, final)
		})
	}
}

func TestScan_ScannerOptions(t *testing.T) {
	var seen []string
	file, err := Scan(loadModels(t), WithScannerOptions(scanner.WithObserver(func(m scanner.MemberInfo) {
		seen = append(seen, m.Name)
	})))
	require.NoError(t, err)
	require.NotEmpty(t, file.Classes)
	assert.Empty(t, seen, "scanning is lazy")

	constants, err := file.Classes[0].Scanner.Constants()
	require.NoError(t, err)
	assert.Contains(t, seen, constants[0])
}
