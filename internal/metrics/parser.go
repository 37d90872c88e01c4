package metrics

import (
	"regexp"
	"strings"
	"time"
)

// 访问日志的固定提取规则：[时间戳] 段后跟 "METHOD /path ..." 段
var (
	logPattern      = regexp.MustCompile(`\[([^\]]+)\]\s+"([A-Z]+)\s+([^\s"]+)`)
	downloadPattern = regexp.MustCompile(`/downloads/([a-z0-9-]+)/`)
	visitPattern    = regexp.MustCompile(`^/(?:$|index\.html$|pages/(?:tools|tool|downloads)\.html$)`)
)

const nginxTimeLayout = "02/Jan/2006:15:04:05"

// ParseLine 从一行访问日志中提取时间戳段、HTTP 方法和请求路径。
// 不匹配的行不是错误，直接跳过。
func ParseLine(line string) (timestamp, method, path string, ok bool) {
	m := logPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], m[3], true
}

// ParseDate 解析时间戳段的第一个空白分隔字段，
// 例如 28/Feb/2026:11:31:22 +0800 中的日期时间部分。
// 第二个字段是时区偏移，按原始口径直接丢弃，不做时区归一化。
func ParseDate(raw string) (string, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return "", false
	}
	t, err := time.Parse(nginxTimeLayout, fields[0])
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// IsVisitPath 判断路径是否计入站点访问量（整串锚定匹配）
func IsVisitPath(path string) bool {
	return visitPattern.MatchString(path)
}

// DownloadSlug 提取 /downloads/<slug>/ 段中的工具标识，
// slug 只允许小写字母、数字和连字符。
func DownloadSlug(path string) (string, bool) {
	m := downloadPattern.FindStringSubmatch(path)
	if m == nil {
		return "", false
	}
	return m[1], true
}
