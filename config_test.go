package pixely_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/kevin-cantwell/pixely"
)

var _ = Describe("Config", func() {
	It("falls back to the defaults", func() {
		cfg := mustConfig("geralt.gif")
		Expect(cfg.Source).To(Equal("geralt.gif"))
		Expect(cfg.OutputDir).To(Equal(pixely.DefaultOutputDir))
		Expect(cfg.Scale).To(Equal(pixely.DefaultScale))
		Expect(cfg.AnimationDuration).To(Equal(pixely.DefaultAnimationDuration))
		Expect(cfg.ClassName).To(MatchRegexp(`^pixely-\d+$`))
	})

	It("applies options in order", func() {
		cfg := mustConfig("geralt.gif",
			pixely.WithOutputDir("out"),
			pixely.WithScale(2),
			pixely.WithScale(4),
			pixely.WithAnimationDuration(0.5),
			pixely.WithClassName("geralt"),
		)
		Expect(cfg.OutputDir).To(Equal("out"))
		Expect(cfg.Scale).To(Equal(4.0))
		Expect(cfg.AnimationDuration).To(Equal(0.5))
		Expect(cfg.ClassName).To(Equal("geralt"))
	})

	It("ignores an empty output directory", func() {
		cfg := mustConfig("geralt.gif", pixely.WithOutputDir(""))
		Expect(cfg.OutputDir).To(Equal(pixely.DefaultOutputDir))
	})

	It("requires a source", func() {
		_, err := pixely.NewConfig("")
		Expect(err).To(MatchError(pixely.ErrMissingSource))
		Expect(err.Error()).To(Equal("pixely: source parameter required"))
	})

	DescribeTable("rejects bad numbers",
		func(opt pixely.ConfigOpt, want error) {
			_, err := pixely.NewConfig("geralt.gif", opt)
			Expect(errors.Is(err, want)).To(BeTrue())
		},
		Entry("zero scale", pixely.WithScale(0), pixely.ErrInvalidScale),
		Entry("negative scale", pixely.WithScale(-2), pixely.ErrInvalidScale),
		Entry("NaN scale", pixely.WithScale(math.NaN()), pixely.ErrInvalidScale),
		Entry("zero duration", pixely.WithAnimationDuration(0), pixely.ErrInvalidDuration),
		Entry("negative duration", pixely.WithAnimationDuration(-1), pixely.ErrInvalidDuration),
	)

	DescribeTable("checks class names",
		func(name string, valid bool) {
			_, err := pixely.NewConfig("geralt.gif", pixely.WithClassName(name))
			if valid {
				Expect(err).NotTo(HaveOccurred())
			} else {
				Expect(errors.Is(err, pixely.ErrInvalidClassName)).To(BeTrue())
			}
		},
		Entry("plain", "geralt", true),
		Entry("dashed", "pixely-42", true),
		Entry("leading underscore", "_x", true),
		Entry("leading dash", "-x", true),
		Entry("empty", "", false),
		Entry("leading digit", "1x", false),
		Entry("space", "a b", false),
		Entry("markup", `x"><script>`, false),
	)

	Describe("namers", func() {
		It("draws seeded names deterministically", func() {
			a, b := pixely.NewRandomNamer(42), pixely.NewRandomNamer(42)
			for i := 0; i < 10; i++ {
				Expect(a.Name()).To(Equal(b.Name()))
			}
		})

		It("stays within 1..10000", func() {
			n := pixely.NewRandomNamer(7)
			for i := 0; i < 1000; i++ {
				Expect(n.Name()).To(MatchRegexp(`^pixely-([1-9][0-9]{0,3}|10000)$`))
			}
		})

		It("numbers names in sequence", func() {
			n := &pixely.SequenceNamer{}
			Expect(n.Name()).To(Equal("pixely-1"))
			Expect(n.Name()).To(Equal("pixely-2"))

			named := &pixely.SequenceNamer{Prefix: "frame"}
			Expect(named.Name()).To(Equal("frame-1"))
		})

		It("hands out unique sequence names concurrently", func() {
			n := &pixely.SequenceNamer{}
			names := make([]string, 64)
			var wg sync.WaitGroup
			for i := range names {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					names[i] = n.Name()
				}(i)
			}
			wg.Wait()

			seen := map[string]bool{}
			for _, name := range names {
				Expect(seen).NotTo(HaveKey(name))
				seen[name] = true
			}
		})

		It("uses the namer given", func() {
			cfg := mustConfig("geralt.gif", pixely.WithNamer(&pixely.SequenceNamer{Prefix: "img"}))
			Expect(cfg.ClassName).To(Equal("img-1"))
		})
	})

	Describe("config files", func() {
		It("parses every key", func() {
			f, err := pixely.ParseConfigFile([]byte("source: geralt.gif\noutput: out\nscale: 4\nduration: 1.5\nclass: geralt\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(*f).To(Equal(pixely.ConfigFile{
				Source:    "geralt.gif",
				Output:    "out",
				Scale:     4,
				Duration:  1.5,
				ClassName: "geralt",
			}))

			cfg := mustConfig(f.Source, f.Options()...)
			Expect(cfg.OutputDir).To(Equal("out"))
			Expect(cfg.Scale).To(Equal(4.0))
			Expect(cfg.AnimationDuration).To(Equal(1.5))
			Expect(cfg.ClassName).To(Equal("geralt"))
		})

		It("leaves unset keys to the defaults", func() {
			f, err := pixely.ParseConfigFile([]byte("scale: 3\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Options()).To(HaveLen(1))

			cfg := mustConfig("geralt.gif", f.Options()...)
			Expect(cfg.Scale).To(Equal(3.0))
			Expect(cfg.AnimationDuration).To(Equal(pixely.DefaultAnimationDuration))
		})

		It("rejects unknown keys", func() {
			_, err := pixely.ParseConfigFile([]byte("scale: 3\nzoom: 2\n"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(HavePrefix("pixely: parsing config:"))
		})

		It("reads files from disk", func() {
			dir, err := os.MkdirTemp("", "pixely")
			Expect(err).NotTo(HaveOccurred())
			defer os.RemoveAll(dir)

			path := filepath.Join(dir, "pixely.yaml")
			Expect(os.WriteFile(path, []byte("duration: 2\n"), 0o644)).To(Succeed())

			f, err := pixely.ReadConfigFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Duration).To(Equal(2.0))

			_, err = pixely.ReadConfigFile(filepath.Join(dir, "missing.yaml"))
			Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
		})
	})
})
