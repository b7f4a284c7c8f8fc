package embedded

import (
	_ "embed"
)

// Coach system instructions, one per mode
//
//go:embed data/prompts/lyrics_system_prompt.txt
var LyricsSystemPromptTxt []byte

//go:embed data/prompts/melody_system_prompt.txt
var MelodySystemPromptTxt []byte
