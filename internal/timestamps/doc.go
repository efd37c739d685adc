// Package timestamps turns free-form chapter listings into validated,
// duration-anchored segments.
//
// The package is pure: it never touches the filesystem, the network, or the
// console. Text flows through four steps:
//
//   - ParseClock normalizes loose clock strings ("4:35", "1:02:03") into
//     durations.
//   - MatchLine/ParseBlock recognize Start markers (one clock per line) and
//     Duration markers (two clocks per line) and classify a block's style.
//   - Validator scores a block's coverage against the known video duration.
//   - BuildSegments converts the winning markers into an ordered segment list
//     that tiles the whole video.
package timestamps
