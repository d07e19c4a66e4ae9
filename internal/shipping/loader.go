// Package shipping provides the region shipping-rate table for cash-on-delivery orders.
// This file implements loading rate overrides from YAML files and watching them
// for changes so the shop can adjust courier prices without a restart.
//
// Package shipping 提供货到付款订单的地区运费表。
// 本文件实现从YAML文件加载费率覆盖并监视其变化，使店铺无需重启即可调整快递价格。
package shipping

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// rateFile is the on-disk shape of a rate override file.
// rateFile 是费率覆盖文件的磁盘格式。
type rateFile struct {
	Rates []Rate `yaml:"rates"`
}

// LoadTable reads a rate table from a YAML file.
//
// LoadTable 从YAML文件读取费率表。
//
// Parameters:
//   - path: Path to the YAML rate file
//
// Returns:
//   - *Table: The loaded table
//   - error: An error if the file cannot be read or parsed
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate file: %w", err)
	}

	var rf rateFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse rate file: %w", err)
	}
	if len(rf.Rates) == 0 {
		return nil, fmt.Errorf("rate file %s contains no rates", path)
	}

	for _, r := range rf.Rates {
		if r.ID <= 0 || r.Name == "" || r.Home < 0 {
			return nil, fmt.Errorf("rate file %s: invalid entry for id %d", path, r.ID)
		}
		if r.Office != nil && *r.Office < 0 {
			return nil, fmt.Errorf("rate file %s: negative office price for id %d", path, r.ID)
		}
	}

	return NewTable(rf.Rates), nil
}

// SaveTable writes a table to a YAML file, for bootstrapping an editable rate file.
//
// SaveTable 将费率表写入YAML文件，用于引导生成可编辑的费率文件。
//
// Parameters:
//   - t: The table to save
//   - path: Destination file path
//
// Returns:
//   - error: An error if marshalling or writing fails
func SaveTable(t *Table, path string) error {
	data, err := yaml.Marshal(rateFile{Rates: t.Rates()})
	if err != nil {
		return fmt.Errorf("failed to marshal rate table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write rate file: %w", err)
	}
	return nil
}

// Watcher reloads a rate file whenever it changes on disk and hands the new
// table to subscribers. A file that becomes invalid is logged and skipped;
// the previous table stays in effect.
//
// Watcher 在费率文件在磁盘上发生变化时重新加载它，并将新表交给订阅者。
// 文件变为无效时记录日志并跳过；之前的表继续生效。
type Watcher struct {
	path      string
	watcher   *fsnotify.Watcher
	mu        sync.RWMutex
	current   *Table
	onReload  []func(*Table)
	closeOnce sync.Once
	done      chan struct{}
}

// NewWatcher creates a watcher over the given rate file. The file must be
// loadable at creation time.
//
// NewWatcher 在给定的费率文件上创建监视器。创建时该文件必须可加载。
//
// Parameters:
//   - path: Path to the YAML rate file
//
// Returns:
//   - *Watcher: A running watcher
//   - error: An error if the file cannot be loaded or watched
func NewWatcher(path string) (*Watcher, error) {
	table, err := LoadTable(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	// Watch the directory: editors replace files rather than writing in place.
	// 监视目录：编辑器会替换文件而不是原地写入。
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch rate file: %w", err)
	}

	w := &Watcher{
		path:    path,
		watcher: fw,
		current: table,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Table returns the most recently loaded table.
//
// Table 返回最近加载的表。
func (w *Watcher) Table() *Table {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Subscribe registers a callback invoked with the new table after each
// successful reload.
//
// Subscribe 注册一个回调，在每次成功重新加载后以新表调用。
//
// Parameters:
//   - fn: The callback to invoke on reload
func (w *Watcher) Subscribe(fn func(*Table)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = append(w.onReload, fn)
}

// Close stops watching the rate file.
//
// Close 停止监视费率文件。
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

// loop services filesystem events until the watcher is closed.
// loop 处理文件系统事件，直到监视器关闭。
func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[SHIPPING] Rate file watch error: %v", err)
		}
	}
}

// reload loads the file and publishes the new table on success.
// reload 加载文件并在成功时发布新表。
func (w *Watcher) reload() {
	table, err := LoadTable(w.path)
	if err != nil {
		log.Printf("[SHIPPING] Ignoring invalid rate file %s: %v", w.path, err)
		return
	}

	w.mu.Lock()
	w.current = table
	subscribers := make([]func(*Table), len(w.onReload))
	copy(subscribers, w.onReload)
	w.mu.Unlock()

	log.Printf("[SHIPPING] Rate table reloaded from %s (%d regions)", w.path, len(table.Rates()))
	for _, fn := range subscribers {
		fn(table)
	}
}
