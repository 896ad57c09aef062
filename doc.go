// Package flamingo runs a pretrained audio-understanding ONNX model and
// exposes it for single-file description, batch description, and corpus
// evaluation against reference labels.
//
// # Quick Start
//
//	model, err := flamingo.New("/models/audio-flamingo")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer model.Close()
//
//	res, err := model.Describe(ctx, "clip.wav", "", 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s (%d tokens in %.2fs)\n", res.Text, res.TokensGenerated, res.ElapsedSec)
//
// # Thread Safety
//
// Model is safe for concurrent use. It manages an internal pool of ONNX
// sessions, configurable via WithPoolSize.
//
// # Model Directory
//
// The directory passed to New must contain:
//   - model.onnx: encoder-decoder graph taking audio_values [1, samples] and
//     decoder_input_ids [1, seq], producing logits [1, seq, vocab]
//   - tokenizer.model: SentencePiece vocabulary used for prompt encoding and
//     output decoding
package flamingo
