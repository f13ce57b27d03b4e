package art

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
	"github.com/gnomegl/gitrank/internal/utils"
)

func PrintLogo(w io.Writer) {
	banner := figure.NewFigure("gitrank", "small", false)
	fmt.Fprintf(w, "\033[36m%s\033[0m", banner.String())
	fmt.Fprintf(w, "        \033[91mv%s\033[0m\n\n", utils.GetVersion())
}
