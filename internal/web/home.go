package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home(view BoardView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>MoonMash</title>
    <style>
      body { font-family: system-ui, sans-serif; margin: 0; background: #f6f7fb; color: #1a1a1a; }
      .shell { max-width: 960px; margin: 0 auto; padding: 2rem 1rem; text-align: center; }
      .grid, .pair { display: flex; flex-wrap: wrap; gap: 1rem; justify-content: center; }
      .card { background: #fff; border-radius: 12px; box-shadow: 0 2px 8px rgba(0,0,0,.08); padding: 1rem; }
      .card img { width: 170px; height: 170px; object-fit: cover; border-radius: 50%; }
      .vote-card { cursor: pointer; }
      .vote-card img { width: 200px; height: 200px; border: 3px solid #007bff; }
      .winner-card img { width: 300px; height: 300px; }
      .eliminated { opacity: .6; }
      .muted { color: #666; }
      .controls { margin: 1.5rem 0; display: flex; gap: 1rem; justify-content: center; }
      .error { color: #c92a2a; min-height: 1.2em; }
    </style>
  </head>
  <body>
    <main class="shell">
      <h1>MoonMash</h1>
      <div class="controls">
        <label class="primary">Upload image
          <input id="upload" type="file" accept="image/*" hidden/>
        </label>
        <button id="reset" type="button">Reset</button>
      </div>
      <p id="error" class="error"></p>
      <div id="board">`); err != nil {
			return err
		}
		if err := Board(view).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>
    </main>
    <script>
      const board = document.getElementById("board");
      const errorBox = document.getElementById("error");
      let match = 0;
      let socket;

      function connect() {
        const scheme = location.protocol === "https:" ? "wss://" : "ws://";
        socket = new WebSocket(scheme + location.host + "/ws");
        socket.onmessage = (event) => {
          const msg = JSON.parse(event.data);
          if (msg.type === "initial_data" || msg.type === "update_data") {
            match = msg.state.match;
            errorBox.textContent = "";
          } else if (msg.type === "html") {
            const target = document.querySelector(msg.target);
            if (target) target.innerHTML = msg.html;
          } else if (msg.type === "error") {
            errorBox.textContent = msg.error;
          }
        };
        socket.onclose = () => setTimeout(connect, 1000);
      }

      function send(payload) {
        if (socket && socket.readyState === WebSocket.OPEN) {
          socket.send(JSON.stringify(payload));
        }
      }

      board.addEventListener("click", (event) => {
        const card = event.target.closest("[data-vote]");
        if (card) send({ type: "vote", id: card.dataset.vote, match: match });
      });

      document.getElementById("upload").addEventListener("change", (event) => {
        const file = event.target.files[0];
        if (!file) return;
        const reader = new FileReader();
        reader.onload = () => send({ type: "upload_image", image_data: reader.result });
        reader.readAsDataURL(file);
        event.target.value = "";
      });

      document.getElementById("reset").addEventListener("click", () => send({ type: "reset" }));
      connect();
    </script>
  </body>
</html>
`)
		return err
	})
}
