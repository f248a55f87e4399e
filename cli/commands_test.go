package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"retailstore/domain"
	"retailstore/errlog"
	"retailstore/store"
)

// run executes args against rootCmd and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := Execute()
	return out.String(), errOut.String(), err
}

// useStore injects a fresh store and an in-memory error log.
func useStore(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	errorLog = errlog.NewFileLog(fs, errlog.DefaultPath)
	productStore = store.NewProductStore(store.WithErrorLog(errorLog))
	t.Cleanup(resetCLI)
	return fs
}

// reset cobra + global state between tests
func resetCLI() {
	rootCmd.SetArgs(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	rootCmd.SetIn(nil)
	productStore = nil
	errorLog = errlog.Discard
}

func TestStoreScenario(t *testing.T) {
	useStore(t)

	out, _, err := run(t, "add", "--type", "Food", "--name", "Ramen", "--price", "1.5", "--amount", "300")
	require.NoError(t, err)
	var added domain.ProductSummary
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	assert.Equal(t, domain.ProductSummary{Name: "Ramen", Type: "Food", Quantity: 300, UnitPrice: 1.95}, added)

	out, _, err = run(t, "sell", "Ramen", "--amount", "10")
	require.NoError(t, err)
	assert.Equal(t, "sold 10 x Ramen for 19.50\n", out)

	out, _, err = run(t, "info", "Ramen")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ramen","amount":290}`, out)

	out, _, err = run(t, "income")
	require.NoError(t, err)
	assert.Equal(t, "19.50\n", out)

	_, _, err = run(t, "add", "--type", "Sport", "--name", "Basketball", "--price", "50", "--amount", "5")
	require.NoError(t, err)
	out, _, err = run(t, "discount", "Sport", "--percent", "20", "--by", "type")
	require.NoError(t, err)
	assert.Equal(t, "discount 20.00% set on type \"Sport\"\n", out)

	out, _, err = run(t, "sell", "Basketball", "--amount", "2")
	require.NoError(t, err)
	assert.Equal(t, "sold 2 x Basketball for 104.00\n", out)

	out, _, err = run(t, "income")
	require.NoError(t, err)
	assert.Equal(t, "123.50\n", out)
}

func TestList(t *testing.T) {
	useStore(t)
	_, _, err := run(t, "add", "--type", "Food", "--name", "Ramen", "--price", "1.5", "--amount", "300")
	require.NoError(t, err)
	_, _, err = run(t, "add", "--type", "Sport", "--name", "Basketball", "--price", "50", "--amount", "5")
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		out, _, err := run(t, "list", "--output", "json")
		require.NoError(t, err)
		var rows []domain.ProductSummary
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "Ramen", rows[0].Name)
		assert.Equal(t, 65.0, rows[1].UnitPrice)
	})

	t.Run("yaml", func(t *testing.T) {
		out, _, err := run(t, "list", "--output", "yaml")
		require.NoError(t, err)
		var rows []domain.ProductSummary
		require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, 300, rows[0].Quantity)
	})

	t.Run("table", func(t *testing.T) {
		out, _, err := run(t, "list", "--output", "table")
		require.NoError(t, err)
		for _, want := range []string{"NAME", "UNIT PRICE", "Ramen", "Basketball", "1.95", "65.00"} {
			assert.Contains(t, out, want)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := run(t, "list", "--output", "xml")
		assert.Error(t, err)
	})
}

func TestValidationErrorsAreLogged(t *testing.T) {
	fs := useStore(t)

	_, _, err := run(t, "add", "--type", "Food", "--name", "", "--price", "1.5", "--amount", "1")
	assert.True(t, domain.IsValidationError(err), "got %v", err)

	_, _, err = run(t, "add", "--type", "Food", "--name", "Ramen", "--price", "1.5", "--amount", "0")
	assert.True(t, domain.IsValidationError(err), "got %v", err)

	_, _, err = run(t, "discount", "Food", "--percent", "10", "--by", "price")
	assert.True(t, domain.IsValidationError(err), "got %v", err)

	_, _, err = run(t, "sell", "Sushi", "--amount", "1")
	assert.True(t, domain.IsValidationError(err), "got %v", err)

	b, err := afero.ReadFile(fs, errlog.DefaultPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 4)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "ERROR: invalid "), l)
	}
}

func TestInfo_UnknownFails(t *testing.T) {
	useStore(t)
	out, _, err := run(t, "info", "Sushi")
	assert.True(t, errors.Is(err, domain.ErrUnknownProduct), "got %v", err)
	assert.Empty(t, out)
}

func TestImportAndExport(t *testing.T) {
	useStore(t)
	dir := t.TempDir()

	ndjson := filepath.Join(dir, "stock.ndjson")
	require.NoError(t, os.WriteFile(ndjson, []byte(
		"{\"type\":\"Food\",\"name\":\"Ramen\",\"price\":1.5,\"amount\":300}\n"+
			"{\"type\":\"Sport\",\"name\":\"Basketball\",\"price\":50,\"amount\":5,\"discount\":20}\n"), 0o644))
	_, _, err := run(t, "import", "--file", ndjson)
	require.NoError(t, err)

	yml := filepath.Join(dir, "more.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("- type: Food\n  name: Rice\n  price: 2\n  amount: 10\n"), 0o644))
	_, _, err = run(t, "import", "--file", yml)
	require.NoError(t, err)

	_, _, err = run(t, "sell", "Rice", "--amount", "10")
	require.NoError(t, err)

	jsonOut := filepath.Join(dir, "export.json")
	_, _, err = run(t, "export", "--file", jsonOut)
	require.NoError(t, err)
	b, err := os.ReadFile(jsonOut)
	require.NoError(t, err)
	var items []store.StockItem
	require.NoError(t, json.Unmarshal(b, &items))
	require.Len(t, items, 2, "sold-out Rice is not exported")
	assert.Equal(t, "Basketball", items[1].Name)
	assert.Equal(t, 50.0, items[1].Price)
	require.NotNil(t, items[1].Discount)
	assert.Equal(t, 20.0, *items[1].Discount)

	yamlOut := filepath.Join(dir, "export.yml")
	_, _, err = run(t, "export", "--file", yamlOut)
	require.NoError(t, err)
	b, err = os.ReadFile(yamlOut)
	require.NoError(t, err)
	items = nil
	require.NoError(t, yaml.Unmarshal(b, &items))
	assert.Equal(t, "Ramen", items[0].Name)

	want := productStore.AllProducts()[:2]
	for _, path := range []string{jsonOut, yamlOut} {
		useStore(t)
		_, _, err = run(t, "import", "--file", path)
		require.NoError(t, err, path)
		assert.Equal(t, want, productStore.AllProducts(), path)
	}
}

func TestImport_BadFileChangesNothing(t *testing.T) {
	useStore(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`[{"type":"Food","name":"Ramen","price":1.5,"amount":3},{"type":"Food","name":"Rice","price":-2,"amount":1}]`), 0o644))

	_, _, err := run(t, "import", "--file", path)
	assert.True(t, domain.IsValidationError(err), "got %v", err)
	assert.Empty(t, productStore.AllProducts())
}

func TestImport_Errors(t *testing.T) {
	useStore(t)

	_, _, err := run(t, "import", "--file", "")
	assert.Error(t, err)

	_, _, err = run(t, "import", "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestExport_NoFileFlag(t *testing.T) {
	useStore(t)
	_, _, err := run(t, "export", "--file", "")
	assert.Error(t, err)
}

func TestShell(t *testing.T) {
	useStore(t)
	rootCmd.SetIn(strings.NewReader(
		"add --type Food --name Ramen --price 1.5 --amount 300\n" +
			"\n" +
			"sell Ramen --amount 10\n" +
			"sell Ramen --amount 1000\n" +
			"income\n" +
			"quit\n"))

	out, errOut, err := run(t, "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "store> ")
	assert.Contains(t, out, "19.50\n")
	assert.Contains(t, errOut, "not enough")
}

func TestShell_FlagsDoNotCarryOver(t *testing.T) {
	useStore(t)
	rootCmd.SetIn(strings.NewReader(
		"add --type Food --name Ramen --price 1.5 --amount 10\n" +
			"sell Ramen --amount 5\n" +
			"sell Ramen\n" +
			"list --output json\n" +
			"list\n" +
			"exit\n"))

	out, errOut, err := run(t, "shell")
	require.NoError(t, err)
	assert.Empty(t, errOut)
	assert.Contains(t, out, "sold 5 x Ramen")
	assert.Contains(t, out, "sold 1 x Ramen")
	assert.Contains(t, out, "UNIT PRICE", "list falls back to the table format")

	_, qty, err := productStore.ProductInfo("Ramen")
	require.NoError(t, err)
	assert.Equal(t, 4, qty)
}
