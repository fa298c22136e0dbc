package main

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/younglord3302/Lumina/internal/catalog"
	"github.com/younglord3302/Lumina/internal/config"
	"github.com/younglord3302/Lumina/internal/gateway"
	"github.com/younglord3302/Lumina/internal/logging"
	"github.com/younglord3302/Lumina/internal/media"
)

// askCmd asks the shopping assistant one question
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the shopping assistant a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

// describeCmd fetches enhanced marketing copy for a product
var describeCmd = &cobra.Command{
	Use:   "describe [product-id]",
	Short: "Generate an enhanced product description",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

// identifyCmd matches a photo against the catalog
var identifyCmd = &cobra.Command{
	Use:   "identify [image-file]",
	Short: "Identify a catalog product from a photo",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

// transcribeCmd converts a WAV recording to text
var transcribeCmd = &cobra.Command{
	Use:   "transcribe [wav-file]",
	Short: "Transcribe a WAV recording",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranscribe,
}

var (
	speakOut  string
	speakPlay bool
)

// speakCmd renders text as speech
var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Render text as speech and save a WAV file",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSpeak,
}

var (
	videoOut   string
	videoImage string
)

// videoCmd renders a 360-degree product showcase
var videoCmd = &cobra.Command{
	Use:   "video [product-id]",
	Short: "Render a 360-degree product showcase video",
	Args:  cobra.ExactArgs(1),
	RunE:  runVideo,
}

func init() {
	speakCmd.Flags().StringVarP(&speakOut, "out", "o", "speech.wav", "Output WAV path")
	speakCmd.Flags().BoolVar(&speakPlay, "play", false, "Play the clip after rendering")
	videoCmd.Flags().StringVarP(&videoOut, "out", "o", "", "Output MP4 path (default product-<id>.mp4)")
	videoCmd.Flags().StringVar(&videoImage, "image", "", "Reference photo the render should match")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, cancel := opContext()
	defer cancel()

	store, err := catalog.Load()
	if err != nil {
		return err
	}
	gw, err := newGateway(ctx)
	if err != nil {
		return err
	}

	reply, err := gw.NewChat(store).Send(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

func runDescribe(cmd *cobra.Command, args []string) error {
	ctx, cancel := opContext()
	defer cancel()

	p, err := productByArg(args[0])
	if err != nil {
		return err
	}
	gw, err := newGateway(ctx)
	if err != nil {
		return err
	}

	fmt.Println(gw.EnhanceDescription(ctx, p))
	return nil
}

func runIdentify(cmd *cobra.Command, args []string) error {
	ctx, cancel := opContext()
	defer cancel()

	data, mimeType, err := readImage(args[0])
	if err != nil {
		return err
	}

	store, err := catalog.Load()
	if err != nil {
		return err
	}
	gw, err := newGateway(ctx)
	if err != nil {
		return err
	}

	p, found, err := gw.IdentifyProduct(ctx, store, data, mimeType)
	if err != nil {
		return err
	}
	if !found {
		fmt.Println("no catalog product recognized")
		return nil
	}
	fmt.Printf("%d  %s  $%s\n", p.ID, p.Name, p.Price.StringFixed(2))
	return nil
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	ctx, cancel := opContext()
	defer cancel()

	wav, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	gw, err := newGateway(ctx)
	if err != nil {
		return err
	}

	text, err := gw.Transcribe(ctx, wav)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func runSpeak(cmd *cobra.Command, args []string) error {
	ctx, cancel := opContext()
	defer cancel()

	gw, err := newGateway(ctx)
	if err != nil {
		return err
	}
	wav, err := gw.Speak(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := os.WriteFile(speakOut, wav, 0644); err != nil {
		return err
	}
	logger.Info("speech saved",
		zap.String("category", logging.CategoryMedia),
		zap.String("path", speakOut), zap.Int("bytes", len(wav)))
	fmt.Println("wrote", speakOut)

	if speakPlay {
		done, err := media.NewPlayer().Play(wav)
		if err != nil {
			return err
		}
		<-done
	}
	return nil
}

func runVideo(cmd *cobra.Command, args []string) error {
	ctx, cancel := opContext()
	defer cancel()

	p, err := productByArg(args[0])
	if err != nil {
		return err
	}
	gw, err := newGateway(ctx)
	if err != nil {
		return err
	}

	var ref []byte
	var refMime string
	if videoImage != "" {
		if ref, refMime, err = readImage(videoImage); err != nil {
			return err
		}
	}

	fmt.Printf("rendering 360 view of %s, this can take a few minutes...\n", p.Name)
	res, err := gw.GenerateShowcaseVideo(ctx, p, ref, refMime)
	if errors.Is(err, gateway.ErrEntityNotFound) {
		// The key may have been rotated since the config was read.
		if cfg2, lerr := loadFreshConfig(); lerr == nil {
			cfg = cfg2
			if gw2, gerr := newGateway(ctx); gerr == nil {
				res, err = gw2.GenerateShowcaseVideo(ctx, p, ref, refMime)
			}
		}
	}
	if err != nil {
		return err
	}

	if res.URI != "" && len(res.Bytes) == 0 {
		fmt.Println("video hosted at", res.URI)
		return nil
	}

	out := videoOut
	if out == "" {
		out = fmt.Sprintf("product-%d.mp4", p.ID)
	}
	if err := os.WriteFile(out, res.Bytes, 0644); err != nil {
		return err
	}
	fmt.Println("wrote", out)
	return nil
}

// productByArg resolves a numeric product id argument.
func productByArg(arg string) (catalog.Product, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("product id must be a number: %q", arg)
	}
	store, err := catalog.Load()
	if err != nil {
		return catalog.Product{}, err
	}
	p, ok := store.ByID(id)
	if !ok {
		return catalog.Product{}, fmt.Errorf("no product with id %d", id)
	}
	return p, nil
}

// readImage loads a photo from disk, guessing the MIME type from the
// extension and falling back to JPEG.
func readImage(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return data, mimeType, nil
}

// loadFreshConfig re-reads the config file, for key rotation mid-run.
func loadFreshConfig() (*config.Config, error) {
	return config.Load(config.DefaultPath())
}
