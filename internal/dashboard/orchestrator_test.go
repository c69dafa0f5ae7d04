package dashboard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingControl struct {
	labels  []string
	enabled []bool
}

func (c *recordingControl) SetLabel(label string)   { c.labels = append(c.labels, label) }
func (c *recordingControl) SetEnabled(enabled bool) { c.enabled = append(c.enabled, enabled) }

type recordingAlerter struct {
	messages []string
}

func (a *recordingAlerter) Alert(message string) { a.messages = append(a.messages, message) }

func csvSelection() *SelectedFile {
	return &SelectedFile{
		Name: "student_data.csv",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("student_id,course_id,chapter_id,time_spent,score\n1,C101,1,30,70\n")), nil
		},
	}
}

func newTestServer(t *testing.T, predictStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		require.Equal(t, "student_data.csv", header.Filename)

		if predictStatus != http.StatusOK {
			w.WriteHeader(predictStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"predictions":[{"student_id":2,"completion_probability":0.2,"predicted_completion":false,"risk_level":"High"}]}`)
	})
	mux.HandleFunc("/difficulty", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"difficulty_analysis":[{"course_id":"C101","chapter_id":3,"score":41.2,"time_spent":47.9,"difficulty_score":93.8}]}`)
	})
	return httptest.NewServer(mux)
}

func newOrchestratorUnderTest(serverURL string, logger *zap.Logger) (*Orchestrator, *fakeChartBackend, *fakeView, *recordingControl, *recordingAlerter) {
	backend := &fakeChartBackend{}
	view := &fakeView{}
	control := &recordingControl{}
	alerter := &recordingAlerter{}
	renderer := NewRenderer(view, backend)
	orch := NewOrchestrator(NewClient(serverURL), renderer, control, alerter, logger)
	return orch, backend, view, control, alerter
}

func TestAnalyzeSuccess(t *testing.T) {
	server := newTestServer(t, http.StatusOK)
	defer server.Close()

	orch, backend, view, control, alerter := newOrchestratorUnderTest(server.URL, nil)
	orch.SetSelection(csvSelection())

	require.NoError(t, orch.Analyze(context.Background()))

	assert.Equal(t, 1, view.revealed)
	assert.Equal(t, 1, view.summary.TotalStudents)
	assert.Equal(t, 2, backend.liveCount)
	assert.Empty(t, alerter.messages)

	// busy → idle，且结束时恢复可用
	assert.Equal(t, []string{"Analyzing...", "Analyze"}, control.labels)
	assert.Equal(t, []bool{false, true}, control.enabled)
}

func TestAnalyzeNoSelectionIsNoop(t *testing.T) {
	orch, _, view, control, alerter := newOrchestratorUnderTest("http://127.0.0.1:0", nil)

	require.NoError(t, orch.Analyze(context.Background()))

	assert.Empty(t, control.labels)
	assert.Empty(t, alerter.messages)
	assert.Equal(t, 0, view.revealed)
}

func TestAnalyzePredictFailure(t *testing.T) {
	server := newTestServer(t, http.StatusInternalServerError)
	defer server.Close()

	core, logs := observer.New(zap.ErrorLevel)
	orch, backend, view, control, alerter := newOrchestratorUnderTest(server.URL, zap.New(core))
	orch.SetSelection(csvSelection())

	err := orch.Analyze(context.Background())
	require.Error(t, err)

	// 不部分渲染：无图表、无行、不显示容器
	assert.Equal(t, 0, view.revealed)
	assert.Equal(t, 0, view.rowsSet)
	assert.Equal(t, 0, backend.liveCount)

	// 一次用户提示、一条错误日志
	require.Len(t, alerter.messages, 1)
	assert.Equal(t, "Analysis failed. Please check your file and try again.", alerter.messages[0])
	assert.Equal(t, 1, logs.FilterMessage("analysis failed").Len())

	// 触发控件恢复空闲可用
	assert.Equal(t, []string{"Analyzing...", "Analyze"}, control.labels)
	assert.Equal(t, []bool{false, true}, control.enabled)
}

func TestAnalyzeNetworkFailure(t *testing.T) {
	// 指向未监听的端口，两条请求都会失败
	orch, _, view, control, alerter := newOrchestratorUnderTest("http://127.0.0.1:1", nil)
	orch.SetSelection(csvSelection())

	err := orch.Analyze(context.Background())
	require.Error(t, err)

	assert.Equal(t, 0, view.revealed)
	assert.Len(t, alerter.messages, 1)
	assert.Equal(t, []bool{false, true}, control.enabled)
}

func TestAnalyzeRepeatedRunsKeepOneHandlePerSlot(t *testing.T) {
	server := newTestServer(t, http.StatusOK)
	defer server.Close()

	orch, backend, _, _, _ := newOrchestratorUnderTest(server.URL, nil)
	orch.SetSelection(csvSelection())

	require.NoError(t, orch.Analyze(context.Background()))
	require.NoError(t, orch.Analyze(context.Background()))

	assert.Equal(t, 2, backend.liveCount)
	assert.Equal(t, 2, backend.disposals)
}

func TestInputCaptureEnablesTrigger(t *testing.T) {
	control := &recordingControl{}
	label := &recordingLabel{}
	orch := NewOrchestrator(NewClient("http://127.0.0.1:0"), NewRenderer(&fakeView{}, &fakeChartBackend{}), control, &recordingAlerter{}, nil)
	ic := NewInputCapture(control, label, orch)

	ic.Select(nil)
	assert.Empty(t, control.enabled)
	assert.Empty(t, label.names)

	ic.Select(csvSelection())
	assert.Equal(t, []string{"student_data.csv"}, label.names)
	assert.Equal(t, []bool{true}, control.enabled)
}

type recordingLabel struct {
	names []string
}

func (l *recordingLabel) SetFileName(name string) { l.names = append(l.names, name) }
