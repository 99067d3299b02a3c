package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xmh1011/go-varwidth/column"
)

var inspectValues *bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Decode a column block file and print its contents",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, err := os.Open(args[0])
		check(err)
		defer file.Close()

		info, err := file.Stat()
		check(err)

		block := column.NewBlockWithLimit(0)
		check(block.DecodeFrom(file))
		check(printBlock(os.Stdout, block, info.Size(), *inspectValues))
	},
}

func printBlock(w io.Writer, block *column.Block, size int64, withValues bool) error {
	if _, err := fmt.Fprintf(w, "values: %d\nbytes:  %d\n", block.Len(), size); err != nil {
		return err
	}
	if !withValues {
		return nil
	}
	it := column.NewIterator(block)
	defer it.Close()
	for it.SeekToFirst(); it.Valid(); it.Next() {
		if _, err := fmt.Fprintf(w, "%d\t%d\n", it.Index(), it.Value()); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	inspectValues = inspectCmd.Flags().Bool("values", true, "print every value")
	RootCmd.AddCommand(inspectCmd)
}
