package shell

const helpText = `Game of Life - available commands:
  alive i j    make the cell in column i, row j alive
  clear        kill every cell and reset the generation counter
  dead i j     kill the cell in column i, row j
  generate     compute the next generation
  help         show this help
  new x y      start a new game with x columns and y rows
  print        show the board
  quit         leave the program
  resize x y   resize the current game to x columns and y rows
  shape name   replace the board with a centered shape

Commands may be abbreviated to any prefix, e.g. "g" for generate.`
