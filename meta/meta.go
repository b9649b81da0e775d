// meta/meta.go
package meta

// BOARD_SIZE is the number of cells along each axis of the hex board.
const BOARD_SIZE = 11

// CENTER is the coordinate (on both axes) of the mouse's starting cell.
const CENTER = BOARD_SIZE / 2

// INITIAL_WALLS is the number of random walls seeded into every new room.
const INITIAL_WALLS = 6

// SINGLE_PLAYER_PREFIX marks the names of single-player rooms.
const SINGLE_PLAYER_PREFIX = "!"

// MAX_FRAME_SIZE bounds a single protocol frame in bytes.
const MAX_FRAME_SIZE = 4096
