package dashboard

// FileNameLabel 展示当前选中文件名
type FileNameLabel interface {
	SetFileName(name string)
}

// InputCapture 观察文件选择：有文件则显示文件名并启用触发控件，
// 无文件不做任何事（控件保持禁用）。不在此处做任何文件校验，
// 校验完全交给后端。
type InputCapture struct {
	control      TriggerControl
	label        FileNameLabel
	orchestrator *Orchestrator
}

func NewInputCapture(control TriggerControl, label FileNameLabel, orchestrator *Orchestrator) *InputCapture {
	return &InputCapture{
		control:      control,
		label:        label,
		orchestrator: orchestrator,
	}
}

// Select 处理一次文件选择变更
func (ic *InputCapture) Select(file *SelectedFile) {
	if file == nil {
		return
	}

	ic.label.SetFileName(file.Name)
	ic.orchestrator.SetSelection(file)
	ic.control.SetLabel(idleLabel)
	ic.control.SetEnabled(true)
}
