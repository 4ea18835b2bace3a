package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rnlabs/finbot/internal/domain"
	"github.com/rnlabs/finbot/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(t *testing.T, files map[string]string) *CardRenderer {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return NewCardRenderer(dir, logging.New(nil, "silent", "json"))
}

func TestCardFile_Mapping(t *testing.T) {
	assert.Equal(t, "login.json", cardFile(domain.KeyLogin, domain.CategoryUnresolved))
	assert.Equal(t, "HR1.json", cardFile(domain.KeyHR1, domain.CategoryAWS))
	assert.Equal(t, "aws1.json", cardFile(domain.KeyT1, domain.CategoryAWS))
	assert.Equal(t, "azure2.json", cardFile(domain.KeyT2, domain.CategoryAzure))
	assert.Equal(t, "general1.json", cardFile(domain.KeyT1, domain.CategoryGeneral))
	// Unknown categories score and render on the general track.
	assert.Equal(t, "general2.json", cardFile(domain.KeyT2, domain.Category("finance")))
	assert.Equal(t, "thanks.json", cardFile(domain.KeyThanks, domain.CategoryAzure))
}

func TestRender_FromFile(t *testing.T) {
	r := testRenderer(t, map[string]string{
		"login.json": `{"type":"AdaptiveCard","body":[]}`,
	})

	card, err := r.Render(domain.KeyLogin, domain.CategoryUnresolved)
	require.NoError(t, err)
	assert.Equal(t, adaptiveCardContentType, card.ContentType)
	assert.JSONEq(t, `{"type":"AdaptiveCard","body":[]}`, string(card.Content))
}

func TestRender_MissingFileFallsBack(t *testing.T) {
	r := testRenderer(t, nil)

	card, err := r.Render(domain.KeyHR1, domain.CategoryAWS)
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Contains(t, string(card.Content), "leaving your current job")
}

func TestRender_InvalidJSONFallsBack(t *testing.T) {
	r := testRenderer(t, map[string]string{
		"thanks.json": "{not json",
	})

	card, err := r.Render(domain.KeyThanks, domain.CategoryGeneral)
	require.NoError(t, err)
	assert.Contains(t, string(card.Content), "interview is over")
}

func TestVerify_ReportsMissing(t *testing.T) {
	r := testRenderer(t, map[string]string{
		"login.json":   `{}`,
		"welcome.json": `{}`,
	})

	missing := r.Verify()
	assert.Contains(t, missing, "aws1.json")
	assert.Contains(t, missing, "thanks.json")
	assert.NotContains(t, missing, "login.json")
}

func TestVerify_AllPresent(t *testing.T) {
	files := map[string]string{}
	for _, name := range []string{
		"welcome.json", "login.json", "HR1.json", "HR2.json", "thanks.json",
		"aws1.json", "aws2.json", "azure1.json", "azure2.json", "general1.json", "general2.json",
	} {
		files[name] = `{}`
	}
	r := testRenderer(t, files)
	assert.Empty(t, r.Verify())
}
