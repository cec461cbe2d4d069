// package ui implements the interactive terminal interface.
//
// The TUI follows the Elm architecture via [bubbletea]: a single [Model]
// carries all view state, messages arrive through Update, and views render
// from state alone. The flow runs search input, result list, movie detail,
// then save confirmation.
package ui
