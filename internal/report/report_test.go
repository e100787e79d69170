package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/QTest-hq/classscan/internal/scanner"
	"github.com/QTest-hq/classscan/internal/token/tokentest"
)

const src = `final class Cart extends Base implements Countable
{
    const MAX = 10;
    private static $items = [];
    public function add($item, $qty = 1) { $this->items[] = $item; }
    abstract protected function total();
}`

func buildCart(t *testing.T) *Report {
	t.Helper()
	r, err := Build(scanner.New(tokentest.Lex(src), "Shop", nil), "cart.php")
	require.NoError(t, err)
	return r
}

func TestBuild(t *testing.T) {
	r := buildCart(t)

	_, err := uuid.Parse(r.ID)
	assert.NoError(t, err)
	assert.Equal(t, `Shop\Cart`, r.Name)
	assert.Equal(t, "Shop", r.Namespace)
	assert.Equal(t, "class", r.Kind)
	assert.True(t, r.Final)
	assert.Equal(t, `Shop\Base`, r.Parent)
	assert.Equal(t, []string{`Shop\Countable`}, r.Interfaces)

	require.Len(t, r.Constants, 1)
	assert.Equal(t, Constant{Name: "MAX", Value: "10", Line: 3}, r.Constants[0])

	require.Len(t, r.Properties, 1)
	assert.Equal(t, Property{Name: "items", Visibility: "private", Static: true, Default: "[]", Line: 4}, r.Properties[0])

	require.Len(t, r.Methods, 2)
	add := r.Methods[0]
	assert.Equal(t, "add", add.Name)
	assert.Equal(t, []string{"item", "qty"}, add.Parameters)
	assert.Equal(t, "public function add($item, $qty = 1)", add.Signature)
	assert.Equal(t, 5, add.LineStart)

	total := r.Methods[1]
	assert.True(t, total.Abstract)
	assert.Equal(t, "protected", total.Visibility)
	assert.Empty(t, total.Parameters)
}

func TestBuild_ScanError(t *testing.T) {
	_, err := Build(scanner.New(nil, "", nil), "")
	assert.ErrorIs(t, err, scanner.ErrNoTokens)
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []*Report{buildCart(t)}, FormatText))

	out := buf.String()
	assert.Contains(t, out, `final class Shop\Cart [line 1]`)
	assert.Contains(t, out, `extends Shop\Base`)
	assert.Contains(t, out, "MAX = 10")
	assert.Contains(t, out, "private static $items = []")
	assert.Contains(t, out, "1. public function add($item, $qty = 1) [lines 5-5]")
}

func TestRender_Structured(t *testing.T) {
	reports := []*Report{buildCart(t)}

	var jsonBuf bytes.Buffer
	require.NoError(t, Render(&jsonBuf, reports, FormatJSON))
	var fromJSON []Report
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &fromJSON))
	require.Len(t, fromJSON, 1)
	assert.Equal(t, *reports[0], fromJSON[0])

	var yamlBuf bytes.Buffer
	require.NoError(t, Render(&yamlBuf, reports, FormatYAML))
	var fromYAML []Report
	require.NoError(t, yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML))
	require.Len(t, fromYAML, 1)
	assert.Equal(t, *reports[0], fromYAML[0])
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
