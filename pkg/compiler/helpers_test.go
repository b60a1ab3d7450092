package compiler

import (
	"github.com/aretw0/behave/pkg/domain"
)

func greeter() *domain.Behaviour {
	b := domain.NewBehaviour("Greeter")
	b.AddVariable(domain.NewActor("oPC", "The player being greeted"))
	b.AddVariable(domain.NewVariable(domain.TypeString, "sLine", "What to say"))
	b.AddVariable(domain.NewVariable(domain.TypeInt, "nTries", ""))

	greet := b.AddVerb("GreetPlayer")
	greet.ActualName = "Speak"
	greet.Preconditions = []string{"GetIsPC(oPC)", "nTries > 0"}
	greet.VerbData = []string{"oPC"}
	greet.Arguments = []string{"sLine", "", "TRUE"}

	wave := b.AddVerb("Wave")
	wave.ActualName = "PlayAnimation"
	wave.Follower = true
	wave.Arguments = []string{"ANIMATION_FIREFORGET_GREETING"}

	leave := b.AddVerb("Leave")
	leave.Follower = true
	leave.Terminal = true

	greet.AddFollower(wave)
	wave.AddFollower(greet)
	wave.AddFollower(leave)
	return b
}
