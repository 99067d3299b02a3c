package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/xmh1011/go-varwidth/byteutil"
	"github.com/xmh1011/go-varwidth/config"
)

// benchResult 记录一轮测试的耗时
type benchResult struct {
	name    string
	ops     int
	elapsed time.Duration
}

func (r benchResult) print() {
	opsPerSec := float64(r.ops) / r.elapsed.Seconds()
	nsPerOp := float64(r.elapsed.Nanoseconds()) / float64(r.ops)
	fmt.Printf(" %-22s: %10s  %14.2f ops/s  %8.2f ns/op\n", r.name, r.elapsed, opsPerSec, nsPerOp)
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure throughput of the variable-width and word-append primitives",
	Run: func(cmd *cobra.Command, args []string) {
		count := config.GetBenchCount()
		maxWidth := config.GetBenchMaxWidth()
		r := rand.New(rand.NewSource(config.GetBenchSeed()))

		values := make([]uint64, count)
		widths := make([]int, count)
		for i := range values {
			values[i] = r.Uint64()
			widths[i] = r.Intn(maxWidth) + 1
		}

		results, err := runBench(values, widths)
		check(err)

		fmt.Println("==============================================")
		fmt.Printf(" 值个数     : %d\n", count)
		fmt.Printf(" 最大宽度   : %d\n", maxWidth)
		for _, res := range results {
			res.print()
		}
		fmt.Println("==============================================")
	},
}

// runBench 依次测量四个原语，并校验读回的值
func runBench(values []uint64, widths []int) ([]benchResult, error) {
	var results []benchResult
	total := 0
	for _, w := range widths {
		total += w
	}

	// 1) 变长写
	buf := byteutil.ReserveBytes(nil, total+8)
	start := time.Now()
	for i, v := range values {
		buf = byteutil.WriteUintLE(buf, v, widths[i])
	}
	results = append(results, benchResult{"WriteUintLE", len(values), time.Since(start)})
	if len(buf) != total {
		return nil, fmt.Errorf("encoded %d bytes, expected %d", len(buf), total)
	}

	// 2) 变长读
	start = time.Now()
	var offset uint32
	for i, v := range values {
		got := byteutil.ReadUintLEWidth(buf, offset, widths[i])
		if want := v & byteutil.Mask(widths[i]); got != want {
			return nil, fmt.Errorf("value mismatch at %d: expect=%#x, got=%#x", i, want, got)
		}
		offset += uint32(widths[i])
	}
	results = append(results, benchResult{"ReadUintLE", len(values), time.Since(start)})

	// 3) 预留容量后的无检查追加
	words := byteutil.Reserve(nil, len(values))
	start = time.Now()
	for _, v := range values {
		words = byteutil.AppendUint64Unchecked(words, v)
	}
	results = append(results, benchResult{"AppendUint64Unchecked", len(values), time.Since(start)})

	// 4) 批量填充
	words = words[:0]
	start = time.Now()
	for _, v := range values {
		words = byteutil.Append8Uint64(words, v)
	}
	results = append(results, benchResult{"Append8Uint64", len(values) * 8, time.Since(start)})
	if len(words) != len(values)*8 {
		return nil, fmt.Errorf("filled %d words, expected %d", len(words), len(values)*8)
	}

	return results, nil
}

func init() {
	RootCmd.AddCommand(benchCmd)
}
