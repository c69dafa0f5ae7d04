package dashboard

import (
	"context"
	"io"
	"sync"

	"learning_insight_backend/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	idleLabel = "Analyze"
	busyLabel = "Analyzing..."

	// 用户可见的统一失败提示，不区分失败环节
	analysisFailedMessage = "Analysis failed. Please check your file and try again."
)

// TriggerControl 分析触发控件：标签与可用状态
type TriggerControl interface {
	SetLabel(label string)
	SetEnabled(enabled bool)
}

// Alerter 面向用户的错误通知
type Alerter interface {
	Alert(message string)
}

// SelectedFile 输入捕获交给编排器的文件选择。
// Open 延迟到上传时调用，允许同一选择被多次分析。
type SelectedFile struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Orchestrator 驱动一次完整的分析：上传预测、拉取难度统计、
// 渲染仪表盘。两次请求并发执行，只有两者都成功才会渲染；
// 任何失败都收敛到同一个错误边界。
type Orchestrator struct {
	client   *Client
	renderer *Renderer
	control  TriggerControl
	alerter  Alerter
	log      *zap.Logger

	mu       sync.Mutex
	selected *SelectedFile
}

func NewOrchestrator(client *Client, renderer *Renderer, control TriggerControl, alerter Alerter, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		client:   client,
		renderer: renderer,
		control:  control,
		alerter:  alerter,
		log:      log,
	}
}

// SetSelection 由输入捕获调用
func (o *Orchestrator) SetSelection(file *SelectedFile) {
	o.mu.Lock()
	o.selected = file
	o.mu.Unlock()
}

func (o *Orchestrator) selection() *SelectedFile {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selected
}

// Analyze 执行一次分析。未选择文件时静默跳过。
// 触发控件在任何退出路径上都会恢复为空闲可用状态。
func (o *Orchestrator) Analyze(ctx context.Context) error {
	sel := o.selection()
	if sel == nil {
		return nil
	}

	o.control.SetLabel(busyLabel)
	o.control.SetEnabled(false)
	defer func() {
		o.control.SetLabel(idleLabel)
		o.control.SetEnabled(true)
	}()

	var (
		predictions []model.PredictionRecord
		difficulty  []model.DifficultyRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := sel.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		predictions, err = o.client.Predict(gctx, sel.Name, f)
		return err
	})
	g.Go(func() error {
		var err error
		difficulty, err = o.client.Difficulty(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return o.fail(err)
	}

	if err := o.renderer.Render(predictions, difficulty); err != nil {
		return o.fail(err)
	}

	return nil
}

func (o *Orchestrator) fail(err error) error {
	o.log.Error("analysis failed", zap.Error(err))
	o.alerter.Alert(analysisFailedMessage)
	return err
}
