package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ljz/netops_go_server/config"
	"github.com/ljz/netops_go_server/internal/metrics"
)

const defaultOutputPath = "web/data/metrics.json"

type logList []string

func (l *logList) String() string {
	return strings.Join(*l, ", ")
}

func (l *logList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

var (
	logs   logList
	output = flag.String("output", "", "Output JSON path (default "+defaultOutputPath+")")
)

func main() {
	flag.Var(&logs, "log", "Access log file path (repeatable, required)")
	flag.Parse()

	if len(logs) == 0 {
		fmt.Fprintln(os.Stderr, "at least one -log path is required")
		flag.Usage()
		os.Exit(2)
	}

	// 输出路径优先级：-output > 配置文件 > 默认值
	outputPath := *output
	if outputPath == "" {
		outputPath = defaultOutputPath
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config.yaml"
		}
		if cfg, err := config.Load(configPath); err == nil && cfg.Metrics.OutputPath != "" {
			outputPath = cfg.Metrics.OutputPath
		}
	}

	// 任何输入文件缺失都在处理开始前中止，不写出任何结果
	var missing []string
	for _, path := range logs {
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		log.Fatalf("log file not found: %s", strings.Join(missing, ", "))
	}

	report, err := metrics.Collect(logs)
	if err != nil {
		log.Fatalf("Failed to collect metrics: %v", err)
	}

	if err := report.WriteFile(outputPath); err != nil {
		log.Fatalf("Failed to write metrics: %v", err)
	}

	log.Printf("Metrics written to %s", outputPath)
	log.Printf("Dates with visits: %d, tools with downloads: %d",
		len(report.VisitsByDate), len(report.DownloadsByTool))
}
