package mvc

// Controller 串联 Model、View 与 Logger
type Controller struct {
	model  *Model
	view   *View
	logger *Logger
}

func NewController(model *Model, view *View, logger *Logger) *Controller {
	return &Controller{model: model, view: view, logger: logger}
}

// Run 询问用户名、写入 Model 并输出问候
func (c *Controller) Run() error {
	c.logger.Log("Starting application...")

	name, err := c.view.AskForName()
	if err != nil {
		return err
	}
	c.model.SetName(name)
	c.view.DisplayGreeting(c.model.Name())

	c.logger.Log("Application finished.")
	return nil
}
