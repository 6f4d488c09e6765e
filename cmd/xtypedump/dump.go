package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/creachadair/xtype"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file> [path]",
		Short: "Print a file's contents as a colorized tree",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 2 {
				path = args[1]
			}
			sels, err := parsePath(path)
			if err != nil {
				return err
			}
			nav, f, err := openNavigator(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			subNav, subVal, err := navigateLazy(nav, sels)
			if err != nil {
				return err
			}
			if subVal != nil {
				fmt.Println(formatScalar(*subVal))
				return nil
			}
			return dumpTree(cmd.OutOrStdout(), subNav, 0)
		},
	}
}

func dumpTree(w io.Writer, n *xtype.Navigator, depth int) error {
	k, err := n.Kind()
	if err != nil {
		return err
	}
	pad := strings.Repeat("  ", depth)

	switch k {
	case xtype.KindList:
		length, err := n.Len()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, label("list", length))
		for i := 0; i < length; i++ {
			child, err := n.LookupIndex(i)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s%s ", pad+"  ", dim(fmt.Sprintf("[%d]", i)))
			if err := dumpInline(w, child, depth+1); err != nil {
				return err
			}
		}
		return nil

	case xtype.KindDict:
		keys, err := n.Keys()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, label("dict", len(keys)))
		for _, key := range keys {
			child, err := n.LookupKey(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s%s ", pad+"  ", keyColor(key))
			if err := dumpInline(w, child, depth+1); err != nil {
				return err
			}
		}
		return nil

	default:
		v, err := n.Read()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, formatScalar(v))
		return nil
	}
}

// dumpInline prints either a nested container header followed by its
// indented children, or a single scalar line, directly after an already
// printed "[i] " / "key " prefix.
func dumpInline(w io.Writer, n *xtype.Navigator, depth int) error {
	k, err := n.Kind()
	if err != nil {
		return err
	}
	if k == xtype.KindList || k == xtype.KindDict {
		return dumpTree(w, n, depth)
	}
	v, err := n.Read()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, formatScalar(v))
	return nil
}

func label(kind string, count int) string {
	if noColor {
		return fmt.Sprintf("%s(%d)", kind, count)
	}
	return color.New(color.FgYellow).Sprintf("%s(%d)", kind, count)
}

func dim(s string) string {
	if noColor {
		return s
	}
	return color.New(color.Faint).Sprint(s)
}

func keyColor(key string) string {
	if noColor {
		return key + ":"
	}
	return color.New(color.FgCyan).Sprint(key) + ":"
}

func formatScalar(v xtype.Value) string {
	s := v.String()
	if v.Kind == xtype.KindBytes || v.Kind == xtype.KindString {
		s = truncateDisplay(s)
	}
	if v.Kind == xtype.KindArray {
		s = truncateDisplay(s)
	}
	if noColor {
		return s
	}
	switch v.Kind {
	case xtype.KindString:
		return color.New(color.FgGreen).Sprint(s)
	case xtype.KindInt, xtype.KindUint, xtype.KindFloat:
		return color.New(color.FgMagenta).Sprint(s)
	case xtype.KindBool, xtype.KindNull:
		return color.New(color.FgBlue).Sprint(s)
	default:
		return s
	}
}

func truncateDisplay(s string) string {
	if maxBinary <= 0 || len(s) <= maxBinary {
		return s
	}
	return s[:maxBinary] + "..."
}
