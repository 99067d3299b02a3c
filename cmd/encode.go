package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xmh1011/go-varwidth/column"
	"github.com/xmh1011/go-varwidth/log"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <output>",
	Short: "Read decimal uint64 values (one per line) from stdin and write a column block",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		block, err := readValues(os.Stdin)
		check(err)

		file, err := os.Create(args[0])
		check(err)
		defer file.Close()

		n, err := block.EncodeTo(file)
		check(err)
		check(file.Sync())
		log.Infof("wrote %d values (%d bytes) to %s", block.Len(), n, args[0])
	},
}

// readValues 解析每行一个的十进制整数，空行被忽略
func readValues(r io.Reader) (*column.Block, error) {
	block := column.NewBlock()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := block.Append(v); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return block, nil
}

func init() {
	RootCmd.AddCommand(encodeCmd)
}
