package evaluator

// Examples are ready-made formulas offered to new users.
var Examples = []string{
	"x^2",
	"sin(x)",
	"cos(x)",
	"tan(x)",
	"exp(x)",
	"log(x)",
	"abs(x)",
	"sqrt(x)",
}
