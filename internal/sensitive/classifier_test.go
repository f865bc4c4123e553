package sensitive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathwarden/pathwarden/internal/types"
)

func TestClassify_Defaults(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	tests := []struct {
		name           string
		path           string
		sensitive      bool
		category       types.Category
		reasonContains string
	}{
		{name: "env file", path: ".env", sensitive: true, category: types.CatFilename, reasonContains: "environment"},
		{name: "env variant", path: ".env.production", sensitive: true, category: types.CatFilename, reasonContains: "environment"},
		{name: "plain source", path: "main.py", sensitive: false},
		{name: "safe nested file", path: "safe/file.txt", sensitive: false},
		{name: "ssh dir", path: ".ssh/id_rsa", sensitive: true, category: types.CatDirectory, reasonContains: ".ssh"},
		{name: "aws dir nested", path: ".aws/config", sensitive: true, category: types.CatDirectory, reasonContains: ".aws"},
		{name: "secrets dir case-insensitive", path: "SECRETS/notes.txt", sensitive: true, category: types.CatDirectory},
		{name: "ssh key by name", path: "id_rsa", sensitive: true, category: types.CatFilename, reasonContains: "SSH"},
		{name: "credentials file", path: "credentials.json", sensitive: true, category: types.CatFilename, reasonContains: "credential"},
		{name: "database config", path: "database.yml", sensitive: true, category: types.CatFilename, reasonContains: "database"},
		{name: "password list", path: "passwords.txt", sensitive: true, category: types.CatFilename, reasonContains: "password"},
		{name: "backup file", path: "app.conf.bak", sensitive: true, category: types.CatFilename, reasonContains: "backup"},
		{name: "pem extension", path: "server.pem", sensitive: true, category: types.CatExtension, reasonContains: ".pem"},
		{name: "keystore extension", path: "release.keystore", sensitive: true, category: types.CatExtension, reasonContains: ".keystore"},
		{name: "confidential name", path: "confidential-report.md", sensitive: true, category: types.CatFilename},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := c.Classify(tt.path)
			assert.Equal(t, tt.sensitive, v.Sensitive, "verdict for %s: %+v", tt.path, v)
			if tt.sensitive {
				assert.Equal(t, tt.category, v.Category)
				if tt.reasonContains != "" {
					assert.True(t, strings.Contains(v.Reason, tt.reasonContains),
						"reason %q should mention %q", v.Reason, tt.reasonContains)
				}
			} else {
				assert.Empty(t, v.Reason)
			}
		})
	}
}

// directory membership outranks filename and extension rules
func TestClassify_PriorityOrder(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	v := c.Classify("secrets/.env")
	require.True(t, v.Sensitive)
	assert.Equal(t, types.CatDirectory, v.Category)
	assert.Contains(t, v.Reason, "secrets")

	v = c.Classify(".aws/server.pem")
	require.True(t, v.Sensitive)
	assert.Equal(t, types.CatDirectory, v.Category)

	// filename pattern outranks extension
	v = c.Classify("private-signing.key")
	require.True(t, v.Sensitive)
	assert.Equal(t, types.CatFilename, v.Category)
}

// the directory rule matches ancestor segments only; an entry that is itself
// named like a sensitive directory is classified by the filename table
func TestClassify_DirectoryRuleAppliesToParentsOnly(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	v := c.Classify("secrets")
	require.True(t, v.Sensitive)
	assert.Equal(t, types.CatFilename, v.Category)
	assert.Contains(t, v.Reason, "secret")

	v = c.Classify("src/confidential")
	require.True(t, v.Sensitive)
	assert.Equal(t, types.CatFilename, v.Category)

	// a bare file sharing a sensitive directory name that no filename or
	// extension rule covers stays unflagged
	assert.False(t, c.Classify(".aws").Sensitive)
}

func TestClassify_CustomRulesAppend(t *testing.T) {
	c, err := New(
		WithDirNames("vault"),
		WithExtensions("tfstate"),
		WithNamePattern(`^deploy_token$`, "deployment token"),
	)
	require.NoError(t, err)

	assert.True(t, c.Classify("vault/anything.txt").Sensitive)
	assert.True(t, c.Classify("infra.tfstate").Sensitive)
	assert.True(t, c.Classify("deploy_token").Sensitive)

	// built-ins still apply
	assert.True(t, c.Classify(".env").Sensitive)
	assert.False(t, c.Classify("main.go").Sensitive)
}

func TestClassify_InvalidCustomPattern(t *testing.T) {
	_, err := New(WithNamePattern(`([`, "broken"))
	require.Error(t, err)
}

func TestFilterSafe(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	paths := []string{"main.go", ".env", "docs/readme.md", ".ssh/id_rsa", "web/index.html"}
	safe := c.FilterSafe(paths)
	assert.Equal(t, []string{"main.go", "docs/readme.md", "web/index.html"}, safe)
}
