package metrics

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Report 聚合结果文档。map 的键经 encoding/json 序列化时按字典序输出，
// 保证结果可确定性比对。
type Report struct {
	GeneratedAt     string                    `json:"generatedAt"`
	Source          string                    `json:"source"`
	VisitsByDate    map[string]int            `json:"visitsByDate"`
	DownloadsByDate map[string]map[string]int `json:"downloadsByDate"`
	DownloadsByTool map[string]int            `json:"downloadsByTool"`
}

// Aggregator 单趟扫描访问日志的累加器
type Aggregator struct {
	visitsByDate    map[string]int
	downloadsByDate map[string]map[string]int
	downloadsByTool map[string]int
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		visitsByDate:    make(map[string]int),
		downloadsByDate: make(map[string]map[string]int),
		downloadsByTool: make(map[string]int),
	}
}

// AddLine 处理一行日志。格式不符或时间戳无法解析的行不计数、不报错。
func (a *Aggregator) AddLine(line string) {
	timestamp, _, path, ok := ParseLine(line)
	if !ok {
		return
	}

	date, ok := ParseDate(timestamp)
	if !ok {
		return
	}

	// 两种分类相互独立，同一条路径可以同时命中
	if IsVisitPath(path) {
		a.visitsByDate[date]++
	}

	if slug, ok := DownloadSlug(path); ok {
		if a.downloadsByDate[date] == nil {
			a.downloadsByDate[date] = make(map[string]int)
		}
		a.downloadsByDate[date][slug]++
		a.downloadsByTool[slug]++
	}
}

// AddFile 逐行扫描一个日志文件
func (a *Aggregator) AddFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		a.AddLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}
	return nil
}

// Report 生成当前累加结果的聚合文档
func (a *Aggregator) Report(sources []string) *Report {
	return &Report{
		GeneratedAt:     time.Now().Format("2006-01-02T15:04:05"),
		Source:          strings.Join(sources, ", "),
		VisitsByDate:    a.visitsByDate,
		DownloadsByDate: a.downloadsByDate,
		DownloadsByTool: a.downloadsByTool,
	}
}

// Collect 对全部输入文件跑完整的解析-分类-聚合流水线
func Collect(logPaths []string) (*Report, error) {
	agg := NewAggregator()
	for _, path := range logPaths {
		if err := agg.AddFile(path); err != nil {
			return nil, err
		}
	}
	return agg.Report(logPaths), nil
}

// WriteFile 把聚合文档写到 outputPath，必要时创建父目录
func (r *Report) WriteFile(outputPath string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return os.WriteFile(outputPath, data, 0o644)
}
