package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-records/config"
	"github.com/d60-Lab/blog-records/internal/model"
	"github.com/d60-Lab/blog-records/internal/repository"
	"github.com/d60-Lab/blog-records/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// outcome 每次创建尝试的结果
type outcome int

const (
	created outcome = iota
	rejectedPreCheck
	rejectedPreFlush
	rejectedUniqueIndex
	failed
)

type counters struct {
	byOutcome [5]atomic.Int64
}

// 多个 worker 并发创建同名作者，统计三道防线分别拦截了多少次。
// 预检与 pre-flush 都是“先读后写”，并发下只有唯一索引能保证不重复。
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer func() { _ = database.Close(db) }()

	repo := repository.NewAuthorRepository(db)
	ctx := context.Background()

	N := envInt("N", 2000)
	CONC := envInt("CONC", 16)
	NAMES := envInt("NAMES", 50)

	run := uuid.New().String()[:8]
	names := make([]string, NAMES)
	for i := range names {
		names[i] = fmt.Sprintf("race-%s-%03d", run, i)
	}

	var cnt counters
	latencies := make([]time.Duration, N)

	feed := make(chan int, N)
	for i := 0; i < N; i++ {
		feed <- i
	}
	close(feed)

	t0 := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < CONC; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range feed {
				st := time.Now()
				res := attempt(ctx, db, repo, names[i%NAMES])
				latencies[i] = time.Since(st)
				cnt.byOutcome[res].Add(1)
			}
		}()
	}
	wg.Wait()
	total := time.Since(t0)

	var stored int64
	_ = db.Model(&model.Author{}).Where("name LIKE ?", "race-"+run+"-%").Count(&stored)

	pct := func(vs []time.Duration, p float64) time.Duration {
		if len(vs) == 0 {
			return 0
		}
		xs := append([]time.Duration(nil), vs...)
		sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
		k := int(math.Ceil(p*float64(len(xs)))) - 1
		if k < 0 {
			k = 0
		}
		if k >= len(xs) {
			k = len(xs) - 1
		}
		return xs[k]
	}

	fmt.Printf("driver=%s N=%d CONC=%d NAMES=%d\n", cfg.Database.Driver, N, CONC, NAMES)
	fmt.Printf("total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
		total, total/time.Duration(N), pct(latencies, 0.50), pct(latencies, 0.95), pct(latencies, 0.99))
	fmt.Printf("created=%d pre-check=%d pre-flush=%d unique-index=%d other-errors=%d\n",
		cnt.byOutcome[created].Load(),
		cnt.byOutcome[rejectedPreCheck].Load(),
		cnt.byOutcome[rejectedPreFlush].Load(),
		cnt.byOutcome[rejectedUniqueIndex].Load(),
		cnt.byOutcome[failed].Load(),
	)
	fmt.Printf("rows stored=%d (expected %d)\n", stored, NAMES)
}

func attempt(ctx context.Context, db *gorm.DB, repo repository.AuthorRepository, name string) outcome {
	exists, err := repo.ExistsByName(ctx, name)
	if err != nil {
		return failed
	}
	if exists {
		return rejectedPreCheck
	}
	a, err := model.NewAuthor(name, nil)
	if err != nil {
		return failed
	}

	// 在 CheckAuthorNames 之后注册：能执行到这里说明 pre-flush 检查已放行
	passedPreFlush := false
	s := repository.NewSession(db, func(*gorm.DB, []any) error {
		passedPreFlush = true
		return nil
	})
	s.Add(a)
	err = s.Flush(ctx)
	switch {
	case err == nil:
		return created
	case !model.IsDuplicateAuthorName(err):
		return failed
	case passedPreFlush:
		return rejectedUniqueIndex
	default:
		return rejectedPreFlush
	}
}
