package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/QTest-hq/classscan/internal/filescan"
	"github.com/QTest-hq/classscan/internal/report"
	"github.com/QTest-hq/classscan/internal/scanner"
	"github.com/QTest-hq/classscan/internal/token"
	"github.com/QTest-hq/classscan/internal/token/tokentest"
)

const cartSource = `<?php
namespace Shop;

use Shop\Contracts\Countable as Count;

final class Cart extends Base implements Count
{
    const MAX = 10;

    private $items = [];

    public function add($item, $qty = 1)
    {
        $this->items[] = $item;
    }
}

interface Priced
{
    public function price();
}
`

func writeDump(t *testing.T, dir, src string) string {
	t.Helper()
	path := filepath.Join(dir, "cart.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := token.Encode(f, tokentest.Lex(src), token.FormatJSON); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestIsTokenDump(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"tokens.json", true},
		{"tokens.yaml", true},
		{"tokens.YML", true},
		{"Cart.php", false},
		{"Cart", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isTokenDump(tt.path); got != tt.want {
				t.Errorf("isTokenDump(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestMemberRef(t *testing.T) {
	tests := []struct {
		name    string
		byName  string
		index   int
		want    scanner.MemberRef
		wantErr bool
	}{
		{"by name", "add", -1, scanner.ByName("add"), false},
		{"by index", "", 2, scanner.ByIndex(2), false},
		{"neither", "", -1, nil, true},
		{"both", "add", 0, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := memberRef(tt.byName, tt.index)
			if (err != nil) != tt.wantErr {
				t.Fatalf("memberRef() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("memberRef() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectClass(t *testing.T) {
	file, err := filescan.Scan(tokentest.Lex(cartSource))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	for _, name := range []string{"Cart", `Shop\Cart`, `\Shop\Cart`, "cart"} {
		s, err := selectClass(file, name)
		if err != nil {
			t.Errorf("selectClass(%s) error = %v", name, err)
			continue
		}
		if got, _ := s.Name(); got != `Shop\Cart` {
			t.Errorf("selectClass(%s) = %s, want Shop\\Cart", name, got)
		}
	}

	if _, err := selectClass(file, "Missing"); !errors.Is(err, errNoClass) {
		t.Errorf("selectClass(Missing) error = %v, want errNoClass", err)
	}
	if _, err := selectClass(file, ""); err == nil {
		t.Error("selectClass() with two classes and no name should fail")
	}
}

func TestScanCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	dump := writeDump(t, dir, cartSource)

	out, err := run(t, "--project", dir, "scan", "-o", "json", dump)
	if err != nil {
		t.Fatalf("scan error = %v\n%s", err, out)
	}

	var reports []report.Report
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}

	cart := reports[0]
	if cart.Name != `Shop\Cart` || !cart.Final {
		t.Errorf("first report = %s final=%v", cart.Name, cart.Final)
	}
	if cart.Parent != `Shop\Base` {
		t.Errorf("Parent = %s, want Shop\\Base", cart.Parent)
	}
	if len(cart.Interfaces) != 1 || cart.Interfaces[0] != `Shop\Contracts\Countable` {
		t.Errorf("Interfaces = %v", cart.Interfaces)
	}
	if reports[1].Kind != "interface" {
		t.Errorf("second report kind = %s, want interface", reports[1].Kind)
	}
}

func TestScanCommand_Filter(t *testing.T) {
	dir := t.TempDir()
	dump := writeDump(t, dir, cartSource)

	out, err := run(t, "--project", dir, "scan", "--class", `Shop\Pri*`, dump)
	if err != nil {
		t.Fatalf("scan error = %v", err)
	}
	if !strings.Contains(out, `interface Shop\Priced`) {
		t.Errorf("output missing Priced:\n%s", out)
	}
	if strings.Contains(out, "Cart") {
		t.Errorf("filtered output still lists Cart:\n%s", out)
	}
}

func TestMembersCommand(t *testing.T) {
	dir := t.TempDir()
	dump := writeDump(t, dir, cartSource)

	out, err := run(t, "--project", dir, "members", "--class", "Cart", dump)
	if err != nil {
		t.Fatalf("members error = %v", err)
	}
	for _, want := range []string{"constant", "MAX", "property", "items", "private", "method", "add"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMethodCommand(t *testing.T) {
	dir := t.TempDir()
	dump := writeDump(t, dir, cartSource)

	out, err := run(t, "--project", dir, "method", "--class", "Cart", "--name", "add", "--scanner", "signature", dump)
	if err != nil {
		t.Fatalf("method error = %v", err)
	}
	if !strings.Contains(out, `Shop\Cart::add`) {
		t.Errorf("output missing method header:\n%s", out)
	}
	if !strings.Contains(out, "signature:  public function add($item, $qty = 1)") {
		t.Errorf("output missing signature:\n%s", out)
	}

	_, err = run(t, "--project", dir, "method", "--class", "Cart", "--name", "remove", dump)
	if !errors.Is(err, scanner.ErrNotFound) {
		t.Errorf("missing method error = %v, want ErrNotFound", err)
	}

	_, err = run(t, "--project", dir, "method", "--class", "Cart", "--index", "0", "--scanner", "nope", dump)
	if !errors.Is(err, scanner.ErrScannerType) {
		t.Errorf("unknown scanner error = %v, want ErrScannerType", err)
	}
}

func TestMethodCommand_List(t *testing.T) {
	out, err := run(t, "method", "--scanner", "list", "unused.php")
	if err != nil {
		t.Fatalf("method list error = %v", err)
	}
	if out != "method\nsignature\n" {
		t.Errorf("registered scanners = %q", out)
	}
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	if _, err := run(t, "--project", dir, "init"); err != nil {
		t.Fatalf("init error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".classscan.yaml")); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, err := run(t, "--project", dir, "init"); err == nil {
		t.Error("second init without --force should fail")
	}
	if _, err := run(t, "--project", dir, "init", "--force"); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	if _, err := run(t, "--log-level", "loud", "method", "--scanner", "list", "unused.php"); err == nil {
		t.Error("invalid --log-level should fail")
	}

	t.Setenv("CLASSSCAN_FORMAT", "xml")
	if _, err := run(t, "method", "--scanner", "list", "unused.php"); err == nil {
		t.Error("invalid CLASSSCAN_FORMAT should fail")
	}
}
