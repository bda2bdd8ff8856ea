package app

// aboutContent seeds the help note created the first time the about
// shortcut is used. The note is a regular note afterwards; edits stick.
const aboutContent = `# Plume

A small note-taking app that stays out of your way.

## Keys

**List**

- j / k — move
- enter — open note
- n — new note, d — delete note
- p — pin or unpin (up to 3)
- c — categories (up to 2 per note)
- s — sort, f — cycle category filter
- / — search by title
- y — copy note to clipboard
- t — toggle light/dark theme
- o — open Spotify liked songs
- q — quit

**Editor**

- esc — back to the list
- tab — switch between title and body
- ctrl+s — save now
- ctrl+p — markdown preview

Notes save themselves one second after you start typing. Typing "--"
inserts an em dash.
`
