package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/rpnorth/LichtBlick-Case-Study/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
     ____                                    ____                       _
    |  _ \ _____   _____ _ __  _   _  ___   |  _ \ ___ _ __   ___  _ __| |_
    | |_) / _ \ \ / / _ \ '_ \| | | |/ _ \  | |_) / _ \ '_ \ / _ \| '__| __|
    |  _ <  __/\ V /  __/ | | | |_| |  __/  |  _ <  __/ |_) | (_) | |  | |_
    |_| \_\___| \_/ \___|_| |_|\__,_|\___|  |_| \_\___| .__/ \___/|_|   \__|
                                                      |_|
    `
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()

	fmt.Println(yellow(banner))
	fmt.Println(green(fmt.Sprintf("Revenue Report CLI (v%s)", version.FormatVersion())))
}
