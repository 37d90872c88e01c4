package metrics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	visitLine    = `1.2.3.4 - - [01/Jan/2026:10:00:00 +0000] "GET / HTTP/1.1" 200`
	downloadLine = `5.6.7.8 - - [01/Jan/2026:11:00:00 +0000] "GET /downloads/acme-tool/v1.zip HTTP/1.1" 200`
)

func TestAggregator_AddLine(t *testing.T) {
	agg := NewAggregator()
	agg.AddLine(visitLine)
	agg.AddLine(downloadLine)

	report := agg.Report([]string{"access.log"})

	assert.Equal(t, 1, report.VisitsByDate["2026-01-01"])
	assert.Equal(t, 1, report.DownloadsByDate["2026-01-01"]["acme-tool"])
	assert.Equal(t, 1, report.DownloadsByTool["acme-tool"])
}

func TestAggregator_SkipsMalformedLines(t *testing.T) {
	agg := NewAggregator()
	agg.AddLine("complete garbage")
	agg.AddLine(`9.9.9.9 - - [xx/Jan/2026:10:00:00 +0000] "GET / HTTP/1.1" 200`)
	agg.AddLine(`9.9.9.9 - - [01/Jan/2026:10:00:00 +0000] no quoted request here`)

	report := agg.Report(nil)

	assert.Empty(t, report.VisitsByDate)
	assert.Empty(t, report.DownloadsByDate)
	assert.Empty(t, report.DownloadsByTool)
}

func TestAggregator_AccumulatesAcrossDatesAndSlugs(t *testing.T) {
	agg := NewAggregator()
	agg.AddLine(visitLine)
	agg.AddLine(visitLine)
	agg.AddLine(downloadLine)
	agg.AddLine(`5.6.7.8 - - [02/Jan/2026:09:00:00 +0000] "GET /downloads/acme-tool/v2.zip HTTP/1.1" 200`)
	agg.AddLine(`5.6.7.8 - - [02/Jan/2026:09:05:00 +0000] "GET /downloads/other-tool/x.tar.gz HTTP/1.1" 200`)

	report := agg.Report(nil)

	assert.Equal(t, 2, report.VisitsByDate["2026-01-01"])
	assert.Equal(t, 1, report.DownloadsByDate["2026-01-01"]["acme-tool"])
	assert.Equal(t, 1, report.DownloadsByDate["2026-01-02"]["acme-tool"])
	assert.Equal(t, 1, report.DownloadsByDate["2026-01-02"]["other-tool"])
	assert.Equal(t, 2, report.DownloadsByTool["acme-tool"])
	assert.Equal(t, 1, report.DownloadsByTool["other-tool"])
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()

	log1 := filepath.Join(dir, "access.log")
	require.NoError(t, os.WriteFile(log1, []byte(visitLine+"\n"+downloadLine+"\n"), 0o644))
	log2 := filepath.Join(dir, "access.log.1")
	require.NoError(t, os.WriteFile(log2, []byte(visitLine+"\n"), 0o644))

	report, err := Collect([]string{log1, log2})
	require.NoError(t, err)

	assert.Equal(t, 2, report.VisitsByDate["2026-01-01"])
	assert.Equal(t, 1, report.DownloadsByTool["acme-tool"])
	assert.Equal(t, log1+", "+log2, report.Source)
	assert.NotEmpty(t, report.GeneratedAt)
}

func TestCollect_MissingFile(t *testing.T) {
	_, err := Collect([]string{filepath.Join(t.TempDir(), "nope.log")})
	assert.Error(t, err)
}

func TestReport_WriteFile(t *testing.T) {
	agg := NewAggregator()
	agg.AddLine(visitLine)
	agg.AddLine(downloadLine)
	agg.AddLine(`5.6.7.8 - - [02/Jan/2026:09:00:00 +0000] "GET / HTTP/1.1" 200`)
	report := agg.Report([]string{"a.log", "b.log"})

	// 输出目录不存在时自动创建
	out := filepath.Join(t.TempDir(), "web", "data", "metrics.json")
	require.NoError(t, report.WriteFile(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded.VisitsByDate["2026-01-01"])
	assert.Equal(t, 1, decoded.VisitsByDate["2026-01-02"])
	assert.Equal(t, "a.log, b.log", decoded.Source)

	// map 键按字典序输出，结果可确定性比对
	text := string(data)
	assert.Less(t, strings.Index(text, "2026-01-01"), strings.Index(text, "2026-01-02"))
}
