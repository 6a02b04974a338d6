package coroutine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Result 单个工作函数的结果
type Result[R any] struct {
	Value R
	Err   error
}

// DefaultMaxWorkers 默认并发数
func DefaultMaxWorkers() int {
	return runtime.NumCPU()
}

// Map 并行执行map操作，将输入切片中的每个元素应用函数并返回结果
//
// 结果与输入一一对应，顺序不变。ctx 取消后尚未开始的元素直接返回 ctx 的错误。
func Map[T, R any](ctx context.Context, maxWorkers int, items []T, mapFunc func(T) (R, error)) []Result[R] {
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers()
	}

	results := make([]Result[R], len(items))
	var g errgroup.Group
	g.SetLimit(maxWorkers)

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			value, err := mapFunc(item)
			results[i] = Result[R]{Value: value, Err: err}
			return nil
		})
	}
	g.Wait()
	return results
}
