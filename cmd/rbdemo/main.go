// Command rbdemo builds an ordered map from the command line and prints its
// traversal, shape and balancing statistics.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/AlonMell/ordmap/internal/rbtree"
)

var log = logrus.WithField("component", "rbdemo")

type options struct {
	Keys     []int
	Deletes  []int
	Order    string
	Replace  bool
	Verify   bool
	Trace    bool
	LogLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "rbdemo",
		Short: "insert and delete keys in a red-black tree and show the result",

		// SilenceUsage is an option to silence usage when an error occurs.
		SilenceUsage: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(cmd.OutOrStdout(), loadOptions(v)); err != nil {
				log.WithError(err).Error("rbdemo failed")
				return err
			}
			return nil
		},
	}

	bindFlags(cmd.Flags())
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		log.WithError(err).Panic("unable to bind flags")
	}

	v.SetEnvPrefix("rbdemo")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

func bindFlags(fs *pflag.FlagSet) {
	fs.IntSlice("keys", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, "keys to insert, in order")
	fs.IntSlice("delete", nil, "keys to delete after inserting, in order")
	fs.String("order", "in", "traversal order to print: in, pre or post")
	fs.Bool("replace", false, "replace the value of a duplicate key instead of failing")
	fs.Bool("verify", false, "check the red-black invariants after every mutation")
	fs.Bool("trace", false, "log every fix-up step (needs --log-level debug)")
	fs.String("log-level", "info", "logrus log level")
}

func loadOptions(v *viper.Viper) options {
	return options{
		Keys:     v.GetIntSlice("keys"),
		Deletes:  v.GetIntSlice("delete"),
		Order:    v.GetString("order"),
		Replace:  v.GetBool("replace"),
		Verify:   v.GetBool("verify"),
		Trace:    v.GetBool("trace"),
		LogLevel: v.GetString("log-level"),
	}
}

func run(w io.Writer, opts options) error {
	level, err := logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	logrus.SetLevel(level)

	order, err := rbtree.ParseOrder(opts.Order)
	if err != nil {
		return err
	}

	config := rbtree.DefaultConfig()
	config.Verify = opts.Verify
	config.Trace = opts.Trace
	config.Logger = log
	if opts.Replace {
		config.Duplicates = rbtree.ReplaceDuplicates
	}

	tree := rbtree.New[int, string](config)
	for _, k := range opts.Keys {
		if err := tree.Insert(k, fmt.Sprintf("value-%d", k)); err != nil {
			return errors.Wrapf(err, "insert %d", k)
		}
		log.Debugf("inserted %d", k)
	}

	for _, k := range opts.Deletes {
		if _, ok := tree.Delete(k); !ok {
			log.Warnf("key %d not found, nothing deleted", k)
			continue
		}
		log.Debugf("deleted %d", k)
	}

	renderEntries(w, tree, order)
	fmt.Fprintln(w)
	renderShape(w, tree.Root())
	fmt.Fprintln(w)
	renderSummary(w, tree)
	return nil
}
