package service

import (
	"fmt"
	"sync"
)

// keyedMutex 按键互斥，键无人使用时回收.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

// Lock 获取 key 的锁，返回解锁函数.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()

	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}

	m.refs++
	k.mu.Unlock()

	m.Lock()

	return func() {
		m.Unlock()

		k.mu.Lock()
		m.refs--

		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

var (
	recordLocks = newKeyedMutex()
	// sweepGate 记录变更持有读锁，清理任务持有写锁，
	// 清理不会看到更新到一半（已提交但文件未删）的记录.
	sweepGate sync.RWMutex
)

// lockRecord 串行化同一条记录的变更.
func lockRecord(kind string, id uint) func() {
	sweepGate.RLock()
	unlock := recordLocks.Lock(fmt.Sprintf("%s:%d", kind, id))

	return func() {
		unlock()
		sweepGate.RUnlock()
	}
}

// lockCreate 新建记录只需与清理互斥.
func lockCreate() func() {
	sweepGate.RLock()
	return sweepGate.RUnlock
}

// lockSweep 独占清理.
func lockSweep() func() {
	sweepGate.Lock()
	return sweepGate.Unlock
}
