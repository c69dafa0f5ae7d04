package artifactwatcher

import (
	"path/filepath"
	"sync"
	"time"

	"learning_insight_backend/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ReloadFunc 按文件名（basename）触发对应产物的重载
type ReloadFunc func(filename string)

// Watch 监听模型产物目录，文件被离线训练流程覆盖后自动重载。
// 对同一文件的连续写入做防抖处理，避免半写状态被加载。
func Watch(dir string, reload ReloadFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	if err := watcher.Add(absDir); err != nil {
		return err
	}

	logger.Log.Info("Watching artifact directory", zap.String("dir", absDir))

	var mu sync.Mutex
	pending := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name := filepath.Base(event.Name)

			// 防抖：1秒内的重复写入只触发一次重载
			mu.Lock()
			if t, exists := pending[name]; exists {
				t.Stop()
			}
			pending[name] = time.AfterFunc(time.Second, func() {
				mu.Lock()
				delete(pending, name)
				mu.Unlock()
				reload(name)
			})
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Artifact watcher error", zap.Error(err))
		}
	}
}
