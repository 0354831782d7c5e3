package main

// indexHTML is the demo signup page. It posts the form to /signup and
// mirrors live state from the /live WebSocket.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>bindkit demo</title>
  <style>
    body { font-family: sans-serif; max-width: 32rem; margin: 3rem auto; }
    label { display: block; margin-top: 1rem; }
    input { width: 100%; padding: 0.4rem; }
    .error { color: #b00; font-size: 0.9rem; }
    pre { background: #f4f4f4; padding: 1rem; overflow-x: auto; }
  </style>
</head>
<body>
  <h1>Signup</h1>
  <form id="signup" method="post" action="/signup">
    <label>Username <input name="username"></label>
    <div class="error" data-field="username"></div>
    <label>Email <input name="email"></label>
    <div class="error" data-field="email"></div>
    <button type="submit" style="margin-top:1rem">Sign up</button>
  </form>

  <h2>Live state</h2>
  <pre id="state">connecting…</pre>

  <script>
    const ws = new WebSocket("ws://" + location.host + "/live");
    ws.onmessage = (ev) => {
      const snap = JSON.parse(ev.data);
      document.getElementById("state").textContent = JSON.stringify(snap, null, 2);
      document.querySelectorAll(".error").forEach((el) => {
        el.textContent = (snap.errors || {})[el.dataset.field] || "";
      });
    };

    document.getElementById("signup").addEventListener("submit", async (ev) => {
      ev.preventDefault();
      await fetch("/signup", {
        method: "POST",
        body: new URLSearchParams(new FormData(ev.target)),
      });
    });
  </script>
</body>
</html>
`
