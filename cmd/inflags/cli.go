package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kiryukhasemenov/InFlags/caseflag"
	"github.com/Kiryukhasemenov/InFlags/diaflag"
	"github.com/Kiryukhasemenov/InFlags/internal/textio"
	"github.com/Kiryukhasemenov/InFlags/vocab"
)

// progressEvery is how often training reports its line counter.
const progressEvery = 100000

// NewCLI builds the inflags command tree.
func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "inflags",
		Short: "Reversible case-flag and diacritic-flag text codecs",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Errors from RunE are reported by main; keep usage quiet.
			cmd.SilenceUsage = true
		},
	}

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(newCaseCmd(), newDiaCmd())
	return rootCmd
}

func newCaseCmd() *cobra.Command {
	caseCmd := &cobra.Command{
		Use:   "case",
		Short: "Case-flag codec: strip and restore letter casing",
	}

	var (
		vocabPath          string
		minCount           int
		includeAllcaps     bool
		includeSentInitial bool
		naive              bool
		favorTitle         bool
	)

	trainCmd := &cobra.Command{
		Use:   "train CORPUS",
		Short: "Train a casing vocabulary from a corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := caseflag.DefaultConfig()
			cfg.MinCount = minCount
			cfg.IncludeAllcaps = includeAllcaps
			cfg.IncludeSentInitial = includeSentInitial

			trainer, err := caseflag.NewTrainer(cfg)
			if err != nil {
				return err
			}
			if err := feedCorpus(args[0], trainer.Add); err != nil {
				return err
			}
			v := trainer.Vocab()
			if err := vocab.Save(vocabPath, cfg, v); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "wrote %d vocab entries to %s\n", len(v), vocabPath)
			return nil
		},
	}
	trainCmd.Flags().IntVar(&minCount, "min-count", 1, "minimum frequency for a vocab entry")
	trainCmd.Flags().BoolVar(&includeAllcaps, "include-allcaps", false, "count all-uppercase lines in the statistics")
	trainCmd.Flags().BoolVar(&includeSentInitial, "include-sent-initial", false, "count sentence-initial words in the statistics")

	encodeCmd := &cobra.Command{
		Use:   "encode INPUT OUTPUT",
		Short: "Encode text: lowercase words, flag unpredictable casing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := caseflag.Load(vocabPath)
			if err != nil {
				return err
			}
			codec.FavorTitle = favorTitle
			perLine := codec.EncodeLine
			if naive {
				perLine = codec.EncodeLineNaive
			}
			return transformFile(args[0], args[1], perLine)
		},
	}
	encodeCmd.Flags().BoolVar(&naive, "naive", false, "flag every cased word, ignoring the vocabulary")
	encodeCmd.Flags().BoolVar(&favorTitle, "favor-title", false, "naive mode: flag single uppercase letters as titlecase")

	decodeCmd := &cobra.Command{
		Use:   "decode INPUT OUTPUT",
		Short: "Decode flagged text back to its original casing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := caseflag.Load(vocabPath)
			if err != nil {
				return err
			}
			perLine := codec.DecodeLine
			if naive {
				perLine = codec.DecodeLineNaive
			}
			return transformFile(args[0], args[1], perLine)
		},
	}
	decodeCmd.Flags().BoolVar(&naive, "naive", false, "apply flags only, skipping vocabulary defaults")

	for _, cmd := range []*cobra.Command{trainCmd, encodeCmd, decodeCmd} {
		cmd.Flags().StringVarP(&vocabPath, "vocab", "v", "", "path to the vocabulary file")
		_ = cmd.MarkFlagRequired("vocab")
		caseCmd.AddCommand(cmd)
	}
	return caseCmd
}

func newDiaCmd() *cobra.Command {
	diaCmd := &cobra.Command{
		Use:   "dia",
		Short: "Diacritic-flag codec: strip and restore diacritical marks",
	}

	var (
		vocabPath  string
		minCount   int
		diacritics string
	)

	trainCmd := &cobra.Command{
		Use:   "train CORPUS",
		Short: "Train a diacritization vocabulary from a corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := diaflag.DefaultConfig()
			cfg.MinCount = minCount
			if diacritics != "" {
				cfg.Diacritics = splitNames(diacritics)
			}

			trainer, err := diaflag.NewTrainer(cfg)
			if err != nil {
				return err
			}
			if err := feedCorpus(args[0], trainer.Add); err != nil {
				return err
			}
			v := trainer.Vocab()
			if err := vocab.Save(vocabPath, cfg, v); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "wrote %d vocab entries to %s\n", len(v), vocabPath)
			return nil
		},
	}
	trainCmd.Flags().IntVar(&minCount, "min-count", 1, "minimum frequency for a vocab entry")
	trainCmd.Flags().StringVar(&diacritics, "diacritics", "",
		`comma-separated Unicode mark names (default "COMBINING ACUTE ACCENT,COMBINING CARON,COMBINING RING ABOVE")`)

	encodeCmd := &cobra.Command{
		Use:   "encode INPUT OUTPUT",
		Short: "Encode text: strip configured marks, flag the differences",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := diaflag.Load(vocabPath)
			if err != nil {
				return err
			}
			return transformFile(args[0], args[1], codec.EncodeLine)
		},
	}

	decodeCmd := &cobra.Command{
		Use:   "decode INPUT OUTPUT",
		Short: "Decode flagged text back to its original marks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := diaflag.Load(vocabPath)
			if err != nil {
				return err
			}
			return transformFile(args[0], args[1], codec.DecodeLine)
		},
	}

	for _, cmd := range []*cobra.Command{trainCmd, encodeCmd, decodeCmd} {
		cmd.Flags().StringVarP(&vocabPath, "vocab", "v", "", "path to the vocabulary file")
		_ = cmd.MarkFlagRequired("vocab")
		diaCmd.AddCommand(cmd)
	}
	return diaCmd
}

// feedCorpus streams a corpus file into a trainer, reporting progress
// on stderr every progressEvery lines.
func feedCorpus(path string, add func(string)) error {
	n := 0
	return textio.EachLine(path, func(line string) error {
		add(line)
		n++
		if n%progressEvery == 0 {
			fmt.Fprintf(os.Stderr, "trained %d lines\n", n)
		}
		return nil
	})
}

// transformFile applies perLine to every line of inPath and writes the
// results to outPath. Any failure aborts with the underlying error; a
// partially written output is not silently kept as a success.
func transformFile(inPath, outPath string, perLine func(string) string) error {
	out, err := textio.NewLineWriter(outPath)
	if err != nil {
		return err
	}
	if err := textio.EachLine(inPath, func(line string) error {
		return out.WriteLine(perLine(line))
	}); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// splitNames splits a comma-separated diacritic name list, trimming
// whitespace around each name.
func splitNames(s string) []string {
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}
