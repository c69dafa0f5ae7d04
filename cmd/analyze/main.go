// 命令行分析客户端：把学习记录CSV交给预测服务，
// 生成一份自包含的HTML仪表盘。
//
// 用法: go run ./cmd/analyze -server http://localhost:8000 -file student_data.csv -out dashboard.html
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"learning_insight_backend/internal/dashboard"

	"go.uber.org/zap"
)

// consoleControl 把触发控件的状态变化打到终端
type consoleControl struct{}

func (consoleControl) SetLabel(label string)   { fmt.Printf("[%s]\n", label) }
func (consoleControl) SetEnabled(enabled bool) {}

type consoleLabel struct{}

func (consoleLabel) SetFileName(name string) { fmt.Printf("Selected: %s\n", name) }

type consoleAlerter struct{}

func (consoleAlerter) Alert(message string) { fmt.Fprintln(os.Stderr, "ALERT: "+message) }

func main() {
	server := flag.String("server", "http://localhost:8000", "预测服务地址")
	file := flag.String("file", "", "学习记录CSV文件路径")
	out := flag.String("out", "dashboard.html", "输出HTML路径")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	report := dashboard.NewHTMLReport()
	renderer := dashboard.NewRenderer(report, report)
	client := dashboard.NewClient(*server)
	control := consoleControl{}
	orchestrator := dashboard.NewOrchestrator(client, renderer, control, consoleAlerter{}, logger)

	input := dashboard.NewInputCapture(control, consoleLabel{}, orchestrator)
	input.Select(&dashboard.SelectedFile{
		Name: filepath.Base(*file),
		Open: func() (io.ReadCloser, error) { return os.Open(*file) },
	})

	if err := orchestrator.Analyze(context.Background()); err != nil {
		os.Exit(1)
	}

	outFile, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer outFile.Close()

	if err := report.WriteHTML(outFile); err != nil {
		log.Fatalf("write dashboard: %v", err)
	}

	fmt.Printf("Dashboard written to %s\n", *out)
}
